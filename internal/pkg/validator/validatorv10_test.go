package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type letterInput struct {
	Title  string `validate:"required,notblank,max=128"`
	Liquid string `validate:"liquid"`
	YAML   string `validate:"yaml"`
}

func TestV10Validator(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	tests := []struct {
		name   string
		input  letterInput
		fields []string
	}{
		{
			name:  "valid",
			input: letterInput{Title: "Welcome", Liquid: "Hi {{ recipient.first }}!", YAML: "subject: Hello\ndelay: 2\n"},
		},
		{
			name:   "broken liquid",
			input:  letterInput{Title: "Welcome", Liquid: "Hi {% if %}", YAML: ""},
			fields: []string{"liquid"},
		},
		{
			name:   "broken yaml",
			input:  letterInput{Title: "Welcome", Liquid: "", YAML: "subject: [unclosed"},
			fields: []string{"yaml"},
		},
		{
			name:   "blank title",
			input:  letterInput{Title: "   "},
			fields: []string{"title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr V10ValidationError
			require.ErrorAs(t, err, &verr)
			for _, f := range tt.fields {
				assert.Contains(t, verr.Values(), f)
			}
		})
	}
}

func TestV10Validator_Messages(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	err = v.Validate(letterInput{Title: "x", YAML: "a: [b"})

	var verr V10ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "YAML must be a valid YAML document", verr["yaml"])
}
