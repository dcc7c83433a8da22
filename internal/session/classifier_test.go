package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KushalZanzari/Echo-AI/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		current string
		want    string
	}{
		{
			name:    "coding keyword switches from chat",
			text:    "write me a python function to reverse a list",
			current: domain.ModeChat,
			want:    domain.ModeCoding,
		},
		{
			name:    "coding keyword is case insensitive",
			text:    "Explain this SQL query",
			current: domain.ModeChat,
			want:    domain.ModeCoding,
		},
		{
			name:    "coding keyword wins while already coding",
			text:    "debug this program",
			current: domain.ModeCoding,
			want:    domain.ModeCoding,
		},
		{
			name:    "coding beats writing when both match",
			text:    "summarize this code for me",
			current: domain.ModeChat,
			want:    domain.ModeCoding,
		},
		{
			name:    "writing keyword switches from chat",
			text:    "please proofread my essay",
			current: domain.ModeChat,
			want:    domain.ModeSummarization,
		},
		{
			name:    "writing keyword switches from coding",
			text:    "rewrite this paragraph",
			current: domain.ModeCoding,
			want:    domain.ModeSummarization,
		},
		{
			name:    "writing keyword is a no-op while summarizing",
			text:    "translate this to French",
			current: domain.ModeSummarization,
			want:    domain.ModeSummarization,
		},
		{
			name:    "no keyword keeps the current mode",
			text:    "what is the capital of France",
			current: domain.ModeChat,
			want:    domain.ModeChat,
		},
		{
			name:    "no keyword keeps summarization",
			text:    "make it shorter",
			current: domain.ModeSummarization,
			want:    domain.ModeSummarization,
		},
		{
			name:    "files mode is sticky against coding keywords",
			text:    "show me the code in this document",
			current: domain.ModeFiles,
			want:    domain.ModeFiles,
		},
		{
			name:    "files mode is sticky against writing keywords",
			text:    "summarize the second file",
			current: domain.ModeFiles,
			want:    domain.ModeFiles,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text, tt.current))
		})
	}
}
