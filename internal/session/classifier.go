package session

import (
	"strings"

	"github.com/KushalZanzari/Echo-AI/internal/domain"
)

// Keyword heuristics for auto-switching the conversation mode. "fix" and
// "error" are deliberately absent from the coding set to avoid clashing
// with grammar-checking requests.
var codingKeywords = []string{
	"code", "function", "debug", "java", "js", "python", "script",
	"algorithm", "api", "react", "node", "css", "html", "program",
	"variable", "class", "import", "export", "const", "let", "var",
	"sql", "database",
}

var writingKeywords = []string{
	"summarize", "paraphrase", "rewrite", "grammar", "check", "humanizer",
	"translate", "cover letter", "post", "plagiarism", "citation", "write",
	"compose", "proofread", "essay", "blog", "email",
}

// Classify returns the mode to use for an outgoing message. Files mode is
// sticky and never auto-switched away from. Coding keywords take priority
// over writing keywords; writing keywords only switch when the current
// mode is not already summarization. Otherwise the mode is unchanged.
//
// Callers must short-circuit on empty input before classifying; an empty
// message is never sent and never switches the mode.
func Classify(text, current string) string {
	if current == domain.ModeFiles {
		return current
	}

	lower := strings.ToLower(text)
	if containsAny(lower, codingKeywords) {
		return domain.ModeCoding
	}
	if containsAny(lower, writingKeywords) && current != domain.ModeSummarization {
		return domain.ModeSummarization
	}
	return current
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
