// Package document decodes the YAML documents stored next to campaigns and letters.
package document

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument wraps every decoding or field error.
var ErrInvalidDocument = errors.New("document: invalid")

// Campaign is the YAML of a campaign.
type Campaign struct {
	Title string `yaml:"title,omitempty"`
	// Speed is the maximum number of deliveries in a rolling 24h window.
	Speed int    `yaml:"speed,omitempty"`
	From  string `yaml:"from,omitempty"`
}

// Letter is the YAML of a letter.
type Letter struct {
	Subject string `yaml:"subject,omitempty"`
	// Delay is the number of days to wait after the previous delivery.
	Delay int    `yaml:"delay,omitempty"`
	From  string `yaml:"from,omitempty"`
}

// ParseCampaign decodes a campaign document. Empty input yields a zero Campaign.
func ParseCampaign(raw string) (Campaign, error) {
	var doc Campaign
	if err := decode(raw, &doc); err != nil {
		return Campaign{}, err
	}

	doc.Title = strings.TrimSpace(doc.Title)
	if doc.Speed < 0 {
		return Campaign{}, fmt.Errorf("%w: speed must not be negative", ErrInvalidDocument)
	}
	if err := checkFrom(doc.From); err != nil {
		return Campaign{}, err
	}

	return doc, nil
}

// ParseLetter decodes a letter document. Empty input yields a zero Letter.
func ParseLetter(raw string) (Letter, error) {
	var doc Letter
	if err := decode(raw, &doc); err != nil {
		return Letter{}, err
	}

	doc.Subject = strings.TrimSpace(doc.Subject)
	if doc.Delay < 0 {
		return Letter{}, fmt.Errorf("%w: delay must not be negative", ErrInvalidDocument)
	}
	if err := checkFrom(doc.From); err != nil {
		return Letter{}, err
	}

	return doc, nil
}

// ParseMap decodes free-form YAML into a map, used for recipient attributes.
func ParseMap(raw string) (map[string]any, error) {
	out := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	if err := yaml.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if out == nil {
		out = map[string]any{}
	}

	return out, nil
}

func decode(raw string, out any) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if err := yaml.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}

func checkFrom(from string) error {
	if from == "" {
		return nil
	}
	if _, err := mail.ParseAddress(from); err != nil {
		return fmt.Errorf("%w: from: %w", ErrInvalidDocument, err)
	}

	return nil
}
