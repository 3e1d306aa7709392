// Package tui provides the interactive terminal interface for
// searching the knowledge base, built on Bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
)

// maxVisibleResults bounds the result list height.
const maxVisibleResults = 10

// searchCompleted carries search results back into the update loop.
type searchCompleted struct {
	query   string
	results []domain.SearchResult
}

// errorOccurred carries a failed command's error.
type errorOccurred struct {
	err error
}

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *Styles

	input textinput.Model

	query    string
	results  []domain.SearchResult
	selected int

	totalResources int
	err            error

	// focusInput is true while typing, false while navigating results.
	focusInput bool

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	input := textinput.New()
	input.Placeholder = "Search your knowledge base..."
	input.Focus()
	input.CharLimit = 200

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     DefaultStyles(),
		input:      input,
		focusInput: true,
		width:      80,
		height:     24,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init initialises the app.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.loadStats())
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case searchCompleted:
		a.query = msg.query
		a.results = msg.results
		a.selected = 0
		a.err = nil
		a.focusInput = false
		a.input.Blur()
		return a, nil

	case statsLoaded:
		a.totalResources = msg.total
		return a, nil

	case errorOccurred:
		a.err = msg.err
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleKey processes keyboard input.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit

	case tea.KeyEsc:
		if !a.focusInput {
			// Back to typing.
			a.focusInput = true
			a.input.Focus()
			return a, textinput.Blink
		}
		return a, tea.Quit

	case tea.KeyEnter:
		if a.focusInput {
			query := strings.TrimSpace(a.input.Value())
			if query == "" {
				return a, nil
			}
			return a, a.performSearch(query)
		}
		return a, nil
	}

	if a.focusInput {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		if a.selected > 0 {
			a.selected--
		}
	case "down", "j":
		if a.selected < len(a.results)-1 {
			a.selected++
		}
	case "n", "/":
		a.focusInput = true
		a.input.SetValue("")
		a.input.Focus()
		return a, textinput.Blink
	}

	return a, nil
}

// statsLoaded carries the store summary for the footer.
type statsLoaded struct {
	total int
}

// loadStats fetches the resource count for the footer. Best-effort.
func (a *App) loadStats() tea.Cmd {
	if a.ports.Stats == nil {
		return nil
	}
	return func() tea.Msg {
		report, err := a.ports.Stats.Stats(a.ctx)
		if err != nil {
			return statsLoaded{}
		}
		return statsLoaded{total: report.TotalResources}
	}
}

// performSearch runs the query off the update loop.
func (a *App) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := a.ports.Search.Search(a.ctx, query, domain.SearchOptions{Limit: maxVisibleResults})
		if err != nil {
			return errorOccurred{err: err}
		}
		return searchCompleted{query: query, results: results}
	}
}

// View renders the app.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("knowbase"))
	if a.totalResources > 0 {
		b.WriteString(a.styles.Muted.Render(
			fmt.Sprintf("  %d resources", a.totalResources)))
	}
	b.WriteString("\n\n")

	b.WriteString(a.styles.InputField.Render(a.input.View()))
	b.WriteString("\n\n")

	if a.err != nil {
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	} else {
		b.WriteString(a.renderResults())
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render(a.helpLine()))

	return b.String()
}

// renderResults renders the ranked list with the selection highlight.
func (a *App) renderResults() string {
	if a.query == "" {
		return a.styles.Muted.Render("Type a query and press Enter.") + "\n"
	}
	if len(a.results) == 0 {
		return a.styles.Muted.Render(fmt.Sprintf("No results for %q.", a.query)) + "\n"
	}

	var b strings.Builder
	b.WriteString(a.styles.Subtitle.Render(
		fmt.Sprintf("Results for %q", a.query)))
	b.WriteString("\n\n")

	for i, res := range a.results {
		line := fmt.Sprintf("%d. %s", i+1, res.Metadata.Title)
		if i == a.selected && !a.focusInput {
			b.WriteString(a.styles.Selected.Render(line))
		} else {
			b.WriteString(a.styles.Normal.Render(line))
		}
		b.WriteString("\n")

		meta := fmt.Sprintf("   %s · %s · score %d",
			res.Metadata.SourceType, res.Metadata.Uploader, res.Score)
		b.WriteString(a.styles.Muted.Render(meta))
		b.WriteString("\n")

		if i == a.selected && !a.focusInput && res.Content != "" {
			b.WriteString(a.styles.Muted.Render("   " + domain.Preview(res.Content, 160)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// helpLine returns the footer hint for the current mode.
func (a *App) helpLine() string {
	if a.focusInput {
		return "enter search · esc quit"
	}
	return "j/k navigate · n new search · esc back · q quit"
}
