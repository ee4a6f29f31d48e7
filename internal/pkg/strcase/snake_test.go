package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerSnake(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"Title":       "title",
		"ListID":      "list_id",
		"HTTPServer":  "http_server",
		"YAML":        "yaml",
		"Page2Size":   "page2_size",
		"redirectURL": "redirect_url",
	}

	for in, want := range cases {
		assert.Equal(t, want, ToLowerSnake(in), in)
	}
}
