package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/pkg/storage"
)

const defaultExportURLTTL = 15 * time.Minute

type (
	ExportRecipientsInput struct {
		List int64 `validate:"required,gt=0"`
	}

	ExportRecipientsOutput struct {
		URL       string
		ExpiresAt time.Time
		Total     int
	}
)

func (s *Usecase) ExportRecipients(ctx context.Context, in ExportRecipientsInput) (*ExportRecipientsOutput, error) {
	ctx, span := s.startSpan(ctx, "ExportRecipients")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.findList(ctx, in.List, owner)
	if err != nil {
		return nil, err
	}

	recipients, err := s.repoDB.ListAllRecipients(ctx, list.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list all recipients", "list_id", list.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	for _, r := range recipients {
		if err := w.Write([]string{r.Email, r.First, r.Last, strconv.FormatBool(r.Active), r.Source}); err != nil {
			return nil, goerror.NewServer(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		slog.ErrorContext(ctx, "failed to render recipients csv", "list_id", list.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.campaign.bucket"))
	key := fmt.Sprintf("exports/%d/%s.csv", list.ID, s.uuid.Generate())
	size := int64(buf.Len())
	if _, err := s.storage.PutObject(ctx, bucket, key, buf, storage.PutOptions{
		Size:        size,
		ContentType: "text/csv",
		Metadata:    map[string]string{"list_id": strconv.FormatInt(list.ID, 10), "owner": owner},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to upload recipients export", "list_id", list.ID, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	ttl := s.cfg.GetMinute("modules.campaign.export_url_ttl_minutes")
	if ttl <= 0 {
		ttl = defaultExportURLTTL
	}

	url, err := s.storage.PresignGet(ctx, bucket, key, ttl)
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign recipients export", "list_id", list.ID, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ExportRecipientsOutput{
		URL:       url,
		ExpiresAt: s.clock.Now().Add(ttl),
		Total:     len(recipients),
	}, nil
}
