// Package llm rewrites generated keyword queries into natural questions
// using an OpenAI-compatible endpoint.
package llm

import (
	"context"
	"fmt"
	"strings"
)

const rewriteSystemPrompt = `You turn short keyword search queries into one natural question a user
might ask a personal memory assistant. Keep every keyword. Reply with the
question only, without quotes or explanation.`

// Rewriter turns generated queries into natural-language questions.
type Rewriter struct {
	completer Completer
}

// NewRewriter creates a rewriter on top of c.
func NewRewriter(c Completer) *Rewriter {
	return &Rewriter{completer: c}
}

// Rewrite asks the model to rephrase query.
func (r *Rewriter) Rewrite(ctx context.Context, query string) (string, error) {
	reply, err := r.completer.Complete(ctx, Prompt{
		System: rewriteSystemPrompt,
		User:   query,
	})
	if err != nil {
		return "", fmt.Errorf("failed to rewrite query %q: %w", query, err)
	}

	rewritten := cleanRewrite(reply)
	if rewritten == "" {
		return "", fmt.Errorf("empty rewrite for query %q", query)
	}
	return rewritten, nil
}

// cleanRewrite keeps the first non-empty line and strips surrounding quotes.
func cleanRewrite(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "\"'`")
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
