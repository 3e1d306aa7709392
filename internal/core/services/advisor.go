package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driving"
	"github.com/custodia-labs/knowbase-cli/internal/logger"
)

// Ensure AdvisorService implements the interface.
var _ driving.AdvisorService = (*AdvisorService)(nil)

// advisorContextResults is how many search hits feed the prompt.
const advisorContextResults = 3

// advisorMaxTokens bounds the generated answer length.
const advisorMaxTokens = 512

// AdvisorService answers questions by retrieving the best-matching
// snippets and handing them to an LLM.
type AdvisorService struct {
	search driving.SearchService
	llm    driven.LLMService // optional
}

// NewAdvisorService creates an advisor. The llm may be nil, in which
// case Advise returns domain.ErrLLMUnavailable.
func NewAdvisorService(search driving.SearchService, llm driven.LLMService) *AdvisorService {
	return &AdvisorService{search: search, llm: llm}
}

// Advise searches the store for context and generates an answer.
func (s *AdvisorService) Advise(ctx context.Context, question string) (*driving.Advice, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	logger.Section("Advisor")
	logger.Debug("Question: %q", question)

	results, err := s.search.Search(ctx, question, domain.SearchOptions{Limit: advisorContextResults})
	if err != nil {
		return nil, fmt.Errorf("search context: %w", err)
	}
	logger.Debug("Context: %d results", len(results))

	prompt := buildAdvisorPrompt(question, results)

	answer, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   advisorMaxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	logger.Info("Advisor answered with model %s", s.llm.ModelName())

	return &driving.Advice{
		Answer:  strings.TrimSpace(answer),
		Sources: results,
	}, nil
}

// buildAdvisorPrompt assembles the grounded prompt. Snippets come
// first so the model reads context before the question.
func buildAdvisorPrompt(question string, results []domain.SearchResult) string {
	var b strings.Builder

	if len(results) == 0 {
		b.WriteString("You are a personal knowledge assistant. ")
		b.WriteString("The knowledge base has no entries matching the question. ")
		b.WriteString("Say so, then answer from general knowledge if you can.\n\n")
	} else {
		b.WriteString("You are a personal knowledge assistant. ")
		b.WriteString("Answer the question using the saved notes below. ")
		b.WriteString("Cite note titles where relevant.\n\n")

		for i, res := range results {
			fmt.Fprintf(&b, "Note %d: %s (%s)\n%s\n\n",
				i+1, res.Metadata.Title, res.Metadata.Uploader, res.Content)
		}
	}

	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\nAnswer:")

	return b.String()
}
