package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `{"urls": []}`, `{"urls": []}`},
		{"json fence", "```json\n{\"urls\": []}\n```", `{"urls": []}`},
		{"bare fence", "```\n{\"urls\": []}\n```", `{"urls": []}`},
		{"fence with language id", "```javascript\n{\"urls\": []}\n```", `{"urls": []}`},
		{"surrounding whitespace", "  \n{\"urls\": []}\n  ", `{"urls": []}`},
		{"fence on same line as content", "```{\"urls\": []}```", `{"urls": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}
