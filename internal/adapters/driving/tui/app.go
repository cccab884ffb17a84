package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
	"github.com/seekwell-labs/seekwell-cli/internal/core/ports/driving"
)

// searchCompleted carries a finished search back to the model.
type searchCompleted struct {
	outcome *driving.SearchOutcome
	err     error
}

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  Ports
	ctx    context.Context
	styles *Styles

	// input is the query text field.
	input textinput.Model

	// mode is the search mode for the next query. Tab cycles it.
	mode domain.SearchMode

	// outcome is the last completed search, nil before the first one.
	outcome *driving.SearchOutcome

	// searching is true while a query is in flight.
	searching bool

	err error

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the TUI application with the given ports.
func NewApp(ports Ports) *App {
	input := textinput.New()
	input.Placeholder = "Type a query and press Enter"
	input.Focus()
	input.CharLimit = 512

	mode := domain.SearchModeCombined
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil && settings.Search.Mode.IsValid() {
			mode = settings.Search.Mode
		}
	}

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: DefaultStyles(),
		input:  input,
		mode:   mode,
		width:  80,
		height: 24,
	}
}

// WithContext sets the context used for searches.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Init starts the cursor blink.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 4
		return a, nil

	case searchCompleted:
		a.searching = false
		a.outcome = msg.outcome
		a.err = msg.err
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return a, tea.Quit

		case tea.KeyEnter:
			if a.searching {
				return a, nil
			}
			query := strings.TrimSpace(a.input.Value())
			if query == "" {
				return a, nil
			}
			a.searching = true
			a.err = nil
			return a, a.searchCmd(query)

		case tea.KeyTab:
			a.mode = nextMode(a.mode)
			return a, nil

		case tea.KeyEsc:
			if a.input.Value() != "" {
				a.input.SetValue("")
				return a, nil
			}
			a.outcome = nil
			a.err = nil
			return a, nil

		default:
			if msg.String() == "q" && a.input.Value() == "" {
				return a, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// searchCmd runs the search off the update loop.
func (a *App) searchCmd(query string) tea.Cmd {
	mode := a.mode
	return func() tea.Msg {
		outcome, err := a.ports.Search.Search(a.ctx, driving.SearchParams{
			Query: query,
			Mode:  mode.String(),
		})
		return searchCompleted{outcome: outcome, err: err}
	}
}

// View renders the application.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Seekwell"))
	b.WriteString("  ")
	b.WriteString(a.styles.Mode.Render("[" + a.mode.String() + "]"))
	b.WriteString("\n\n")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")

	switch {
	case a.searching:
		b.WriteString(a.styles.Muted.Render("Searching..."))

	case a.err != nil:
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))

	case a.outcome != nil:
		b.WriteString(a.renderOutcome())

	default:
		b.WriteString(a.styles.Muted.Render("Tab cycles mode, Esc clears, q quits."))
	}

	b.WriteString("\n")
	return b.String()
}

func (a *App) renderOutcome() string {
	var b strings.Builder

	text := a.outcome.Result.Text
	if text == "" {
		text = "No results found."
	}
	b.WriteString(a.styles.Answer.Width(a.contentWidth()).Render(text))
	b.WriteString("\n")

	if len(a.outcome.Result.Citations) > 0 {
		b.WriteString(a.styles.Normal.Render("Sources:"))
		b.WriteString("\n")
		for i, c := range a.outcome.Result.Citations {
			b.WriteString(a.styles.Citation.Render(fmt.Sprintf("[%d] %s", i+1, citationLabel(c))))
			b.WriteString("\n")
		}
	}

	b.WriteString(a.styles.Muted.Render(fmt.Sprintf("%d citation(s), %s",
		len(a.outcome.Result.Citations), a.outcome.Duration.Round(time.Millisecond))))
	return b.String()
}

func (a *App) contentWidth() int {
	width := a.width - 4
	if width < 20 {
		width = 20
	}
	return width
}

func citationLabel(c domain.Citation) string {
	if c.Kind == domain.CitationKindFile {
		return c.Filename
	}
	if c.Title != "" {
		return c.Title + " - " + c.URL
	}
	return c.URL
}

// nextMode cycles file -> web -> combined -> file.
func nextMode(mode domain.SearchMode) domain.SearchMode {
	modes := domain.AllSearchModes()
	for i, m := range modes {
		if m == mode {
			return modes[(i+1)%len(modes)]
		}
	}
	return domain.SearchModeCombined
}
