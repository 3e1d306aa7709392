package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driving"
)

type fakeAdvisor struct {
	advice *driving.Advice
	err    error
}

func (f *fakeAdvisor) Advise(_ context.Context, _ string) (*driving.Advice, error) {
	return f.advice, f.err
}

func TestAdviseCmd_PrintsAnswerAndSources(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	advisorService = &fakeAdvisor{advice: &driving.Advice{
		Answer: "Raft elects a leader per term.",
		Sources: []domain.SearchResult{
			{Metadata: domain.ResultMetadata{Title: "Raft Explained"}},
		},
	}}
	defer func() { advisorService = nil }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"advise", "how does raft work?"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Raft elects a leader per term.")
	assert.Contains(t, out, "- Raft Explained")
}

func TestAdviseCmd_LLMUnavailable(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	advisorService = &fakeAdvisor{err: domain.ErrLLMUnavailable}
	defer func() { advisorService = nil }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"advise", "anything"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no LLM configured")
}
