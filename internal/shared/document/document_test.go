package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCampaign(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Campaign
		wantErr bool
	}{
		{name: "empty", raw: "", want: Campaign{}},
		{name: "full", raw: "title: Spring\nspeed: 50\nfrom: Team <team@example.com>\n", want: Campaign{Title: "Spring", Speed: 50, From: "Team <team@example.com>"}},
		{name: "trims title", raw: "title: '  Fall '", want: Campaign{Title: "Fall"}},
		{name: "broken yaml", raw: "title: [", wantErr: true},
		{name: "negative speed", raw: "speed: -1", wantErr: true},
		{name: "bad from", raw: "from: nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCampaign(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDocument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLetter(t *testing.T) {
	got, err := ParseLetter("subject: Hi {{ recipient.first }}\ndelay: 3\n")
	require.NoError(t, err)
	assert.Equal(t, Letter{Subject: "Hi {{ recipient.first }}", Delay: 3}, got)

	_, err = ParseLetter("delay: -2")
	require.ErrorIs(t, err, ErrInvalidDocument)

	_, err = ParseLetter("delay: soon")
	require.ErrorIs(t, err, ErrInvalidDocument)
}

func TestParseMap(t *testing.T) {
	got, err := ParseMap("")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ParseMap("city: Paris\nage: 30\n")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"city": "Paris", "age": 30}, got)

	_, err = ParseMap("- a\n- b\n")
	require.ErrorIs(t, err, ErrInvalidDocument)
}
