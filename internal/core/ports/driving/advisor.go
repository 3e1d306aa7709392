package driving

import (
	"context"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
)

// Advice is an LLM answer grounded on search results.
type Advice struct {
	// Answer is the generated text.
	Answer string

	// Sources are the search results the prompt was built from.
	Sources []domain.SearchResult
}

// AdvisorService answers questions over the knowledge base by feeding
// the best-matching snippets to an LLM.
type AdvisorService interface {
	// Advise searches the store for context and generates an answer.
	// Returns domain.ErrLLMUnavailable when no LLM is configured.
	Advise(ctx context.Context, question string) (*Advice, error)
}
