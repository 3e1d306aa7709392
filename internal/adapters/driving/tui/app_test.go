package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
)

type stubSearch struct {
	results []domain.SearchResult
	err     error
}

func (s *stubSearch) Search(
	_ context.Context, _ string, _ domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return s.results, s.err
}

func newTestApp(t *testing.T, search *stubSearch) *App {
	t.Helper()

	app, err := NewApp(&Ports{Search: search})
	require.NoError(t, err)
	return app
}

func TestNewApp_RequiresSearchService(t *testing.T) {
	_, err := NewApp(&Ports{})
	assert.ErrorIs(t, err, ErrMissingSearchService)
}

func TestApp_SearchFlow(t *testing.T) {
	app := newTestApp(t, &stubSearch{
		results: []domain.SearchResult{
			{Metadata: domain.ResultMetadata{Title: "First Hit", SourceType: domain.SourceVideo}},
			{Metadata: domain.ResultMetadata{Title: "Second Hit", SourceType: domain.SourceArticle}},
		},
	})

	// Type a query and submit.
	app.input.SetValue("raft")
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	// Run the search command and feed the result back.
	msg := cmd()
	completed, ok := msg.(searchCompleted)
	require.True(t, ok)
	assert.Equal(t, "raft", completed.query)

	model, _ = model.Update(completed)
	app = model.(*App)

	assert.Len(t, app.results, 2)
	assert.False(t, app.focusInput)
	assert.Zero(t, app.selected)

	view := app.View()
	assert.Contains(t, view, "First Hit")
	assert.Contains(t, view, "Second Hit")
	assert.Contains(t, view, `Results for "raft"`)
}

func TestApp_Navigation(t *testing.T) {
	app := newTestApp(t, &stubSearch{})
	app.results = []domain.SearchResult{
		{Metadata: domain.ResultMetadata{Title: "A"}},
		{Metadata: domain.ResultMetadata{Title: "B"}},
	}
	app.focusInput = false

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	app = model.(*App)
	assert.Equal(t, 1, app.selected)

	// Already at the bottom.
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	app = model.(*App)
	assert.Equal(t, 1, app.selected)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	app = model.(*App)
	assert.Zero(t, app.selected)
}

func TestApp_SearchError(t *testing.T) {
	app := newTestApp(t, &stubSearch{err: errors.New("store unavailable")})

	app.input.SetValue("query")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	failed, ok := msg.(errorOccurred)
	require.True(t, ok)

	model, _ := app.Update(failed)
	app = model.(*App)

	assert.Contains(t, app.View(), "store unavailable")
}

func TestApp_EscReturnsToInput(t *testing.T) {
	app := newTestApp(t, &stubSearch{})
	app.focusInput = false

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)

	assert.True(t, app.focusInput)
	assert.NotNil(t, cmd)
}

func TestApp_EmptyQueryIsIgnored(t *testing.T) {
	app := newTestApp(t, &stubSearch{})
	app.input.SetValue("   ")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}
