package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/pkg/secret"
)

const purposeUnsubscribe = "unsubscribe"

var errMalformedToken = errors.New("malformed unsubscribe token payload")

type UnsubscribeInput struct {
	Token string `validate:"required,max=512"`
}

// unsubscribeToken seals "<recipient>:<delivery>".
func (s *Usecase) unsubscribeToken(recipient, delivery int64) (string, error) {
	plain := strconv.FormatInt(recipient, 10) + ":" + strconv.FormatInt(delivery, 10)
	return secret.SealToken(s.sealer, []byte(plain), purposeUnsubscribe)
}

func parseUnsubscribeToken(plain string) (recipient, delivery int64, err error) {
	left, right, ok := strings.Cut(plain, ":")
	if !ok {
		return 0, 0, errMalformedToken
	}
	if recipient, err = strconv.ParseInt(left, 10, 64); err != nil || recipient <= 0 {
		return 0, 0, errMalformedToken
	}
	if delivery, err = strconv.ParseInt(right, 10, 64); err != nil {
		return 0, 0, errMalformedToken
	}
	return recipient, delivery, nil
}

// Unsubscribe is public: the token itself proves the link came from a letter.
func (s *Usecase) Unsubscribe(ctx context.Context, in UnsubscribeInput) error {
	ctx, span := s.startSpan(ctx, "Unsubscribe")
	defer span.End()

	in.Token = strings.TrimSpace(in.Token)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidFormat("invalid unsubscribe token")
	}

	plain, err := secret.OpenToken(s.sealer, in.Token, purposeUnsubscribe)
	if err != nil {
		slog.WarnContext(ctx, "unsubscribe token rejected", "error", err)
		return goerror.NewInvalidFormat("invalid unsubscribe token")
	}

	recipient, delivery, err := parseUnsubscribeToken(string(plain))
	if err != nil {
		slog.WarnContext(ctx, "unsubscribe token payload rejected", "error", err)
		return goerror.NewInvalidFormat("invalid unsubscribe token")
	}

	if err := s.repoMessaging.PublishRecipientUnsubscribed(ctx, RecipientUnsubscribedEvent{
		RecipientID: recipient,
		DeliveryID:  delivery,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish recipient unsubscribed", "recipient_id", recipient, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "recipient unsubscribed", "recipient_id", recipient, "delivery_id", delivery)
	return nil
}
