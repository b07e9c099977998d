package cmd

import (
	"os"

	"github.com/giantswarm/memsearch-probe/internal/llm"
)

const apiKeyEnv = "OPENAI_API_KEY"

// newRewriterFromFlags builds the query rewriter, or returns nil when no
// rewrite endpoint was configured. The API key falls back to OPENAI_API_KEY.
func newRewriterFromFlags(f *probeFlags) *llm.Rewriter {
	if f.rewriteEndpoint == "" {
		return nil
	}

	opts := []llm.Option{
		llm.WithBaseURL(f.rewriteEndpoint),
		llm.WithModel(f.rewriteModel),
		llm.WithTemperature(f.rewriteTemp),
	}
	switch {
	case f.rewriteAPIKey != "":
		opts = append(opts, llm.WithAPIKey(f.rewriteAPIKey))
	case os.Getenv(apiKeyEnv) != "":
		opts = append(opts, llm.WithAPIKey(os.Getenv(apiKeyEnv)))
	}

	return llm.NewRewriter(llm.NewOpenAIClient(opts...))
}
