package usecase

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/osteele/liquid"

	"github.com/blueseamans/mailanes/internal/delivery/entity"
	"github.com/blueseamans/mailanes/internal/pkg/postman"
	"github.com/blueseamans/mailanes/internal/shared/document"
)

const (
	headerListUnsubscribe = "List-Unsubscribe"
	headerDeliveryID      = "X-Mailanes-Delivery"
)

var liquidEngine = liquid.NewEngine()

// letterJob is everything needed to compose and send one delivery.
type letterJob struct {
	DeliveryID  int64
	Campaign    entity.Campaign
	CampaignDoc document.Campaign
	Recipient   entity.Recipient
	Letter      entity.Letter
	LetterDoc   document.Letter
}

func (s *Usecase) unsubscribeURL(recipient, delivery int64) (string, error) {
	token, err := s.unsubscribeToken(recipient, delivery)
	if err != nil {
		return "", err
	}

	base := strings.TrimRight(s.cfg.GetString("app.base_url"), "/")
	return base + "/unsubscribe?token=" + url.QueryEscape(token), nil
}

func (s *Usecase) compose(job letterJob) (postman.Envelope, error) {
	unsubscribe, err := s.unsubscribeURL(job.Recipient.ID, job.DeliveryID)
	if err != nil {
		return postman.Envelope{}, fmt.Errorf("unsubscribe token: %w", err)
	}

	bindings, err := renderBindings(job, unsubscribe)
	if err != nil {
		return postman.Envelope{}, err
	}

	subject := job.LetterDoc.Subject
	if subject == "" {
		subject = job.Letter.Title
	}
	subject, err = liquidEngine.ParseAndRenderString(subject, bindings)
	if err != nil {
		return postman.Envelope{}, fmt.Errorf("render subject: %w", err)
	}

	body, err := liquidEngine.ParseAndRenderString(job.Letter.Liquid, bindings)
	if err != nil {
		return postman.Envelope{}, fmt.Errorf("render body: %w", err)
	}

	from := job.LetterDoc.From
	if from == "" {
		from = job.CampaignDoc.From
	}

	return postman.Envelope{
		From:     from,
		To:       job.Recipient.Email,
		Subject:  strings.TrimSpace(subject),
		TextBody: body,
		Headers: map[string]string{
			headerListUnsubscribe: "<" + unsubscribe + ">",
			headerDeliveryID:      strconv.FormatInt(job.DeliveryID, 10),
		},
	}, nil
}

// renderBindings exposes recipient yaml attributes next to the recipient
// columns. Columns win on a name clash.
func renderBindings(job letterJob, unsubscribe string) (liquid.Bindings, error) {
	recipient, err := document.ParseMap(job.Recipient.YAML)
	if err != nil {
		return nil, fmt.Errorf("recipient yaml: %w", err)
	}
	recipient["id"] = job.Recipient.ID
	recipient["email"] = job.Recipient.Email
	recipient["first"] = job.Recipient.First
	recipient["last"] = job.Recipient.Last

	return liquid.Bindings{
		"recipient": recipient,
		"campaign": map[string]any{
			"id":    job.Campaign.ID,
			"title": job.CampaignDoc.Title,
		},
		"letter": map[string]any{
			"id":    job.Letter.ID,
			"title": job.Letter.Title,
		},
		"unsubscribe_url": unsubscribe,
	}, nil
}
