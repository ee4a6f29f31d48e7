package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/blueseamans/mailanes/internal/campaign/entity"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/pkg/storage"
)

type (
	ImportRecipientsInput struct {
		List int64  `validate:"required,gt=0"`
		File []byte `validate:"required,min=1"`
	}

	importRow struct {
		Email string `validate:"required,email,max=254"`
		First string `validate:"max=128"`
		Last  string `validate:"max=128"`
	}
)

func (s *Usecase) ImportRecipients(ctx context.Context, in ImportRecipientsInput) (*entity.ImportResult, error) {
	ctx, span := s.startSpan(ctx, "ImportRecipients")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	maxSize := s.cfg.GetInt64("modules.campaign.import_max_size_bytes")
	if maxSize > 0 && int64(len(in.File)) > maxSize {
		return nil, goerror.NewInvalidInput(nil, "file", "file exceeds max size")
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.findList(ctx, in.List, owner)
	if err != nil {
		return nil, err
	}

	recipients, skipped, err := s.parseRecipientsCSV(list.ID, owner, in.File)
	if err != nil {
		slog.WarnContext(ctx, "recipients file is not a valid csv", "list_id", list.ID, "error", err)
		return nil, goerror.NewInvalidInput(nil, "file", "file is not a valid csv")
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.campaign.bucket"))
	key := fmt.Sprintf("imports/%d/%s.csv", list.ID, s.uuid.Generate())
	if _, err := s.storage.PutObject(ctx, bucket, key, bytes.NewReader(in.File), storage.PutOptions{
		Size:        int64(len(in.File)),
		ContentType: "text/csv",
		Metadata:    map[string]string{"list_id": strconv.FormatInt(list.ID, 10), "owner": owner},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to archive recipients import", "list_id", list.ID, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	created, err := s.repoDB.ImportRecipients(ctx, recipients)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo import recipients", "list_id", list.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &entity.ImportResult{
		Created: created,
		Skipped: skipped + len(recipients) - created,
	}, nil
}

// parseRecipientsCSV keeps the first occurrence of each valid email. A leading
// header row is ignored, stray quotes are kept as text and rows the reader
// still cannot split count as skipped.
func (s *Usecase) parseRecipientsCSV(list int64, owner string, data []byte) ([]entity.Recipient, int, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true
	reader.LazyQuotes = true

	var (
		recipients []entity.Recipient
		skipped    int
		seen       = map[string]struct{}{}
		first      = true
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			first = false
			skipped++
			continue
		}
		if err != nil {
			return nil, 0, err
		}

		row := importRow{Email: strings.ToLower(strings.TrimSpace(field(record, 0)))}
		if first {
			first = false
			if row.Email == "email" {
				continue
			}
		}
		row.First = strings.TrimSpace(field(record, 1))
		row.Last = strings.TrimSpace(field(record, 2))

		if err := s.validator.Validate(row); err != nil {
			skipped++
			continue
		}
		if _, dup := seen[row.Email]; dup {
			skipped++
			continue
		}
		seen[row.Email] = struct{}{}

		recipients = append(recipients, entity.Recipient{
			ID:     s.uid.Generate(),
			List:   list,
			Email:  row.Email,
			First:  row.First,
			Last:   row.Last,
			Source: "@" + owner,
			Active: true,
		})
	}

	return recipients, skipped, nil
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}
