// # internal/lsif/reporter/tui.go
// A terminal progress reporter selected by the -ui flag, grounded on the
// teacher's cmd/circular/ui.go bubbletea model: a tea.Model driven by an
// internal update channel, styled with lipgloss. The teacher's model
// lists cycles/hallucinations found by a long-running watcher; this one
// tracks the simpler one-shot pipeline progress (projects done,
// documents indexed, diagnostics reported) since the core streams a
// dump rather than accumulating a persistent issue list.
package reporter

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lsifgo/internal/core/ports"
)

var (
	tuiTitleStyle = lipgloss.NewStyle().
		MarginLeft(2).
		Foreground(lipgloss.Color("#3B82F6")).
		Bold(true).
		Render

	tuiDocStyle = lipgloss.NewStyle().Margin(1, 2)

	tuiStatusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#64748B")).
		Italic(true)

	tuiWarnStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FBBF24")).
		Bold(true)

	tuiDoneStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)
)

type tuiMsg struct {
	totalProjects    int
	projectsDone     int
	documentsIndexed int
	diagnostics      int
	finished         bool
}

type tuiModel struct {
	updates chan tuiMsg
	state   tuiMsg
}

func (m tuiModel) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m tuiModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg { return <-m.updates }
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tuiMsg:
		m.state = msg
		if msg.finished {
			return m, tea.Quit
		}
		return m, m.waitForUpdate()
	}
	return m, nil
}

func (m tuiModel) View() string {
	status := tuiStatusStyle.Render(fmt.Sprintf("project %d/%d | %d document(s) indexed",
		m.state.projectsDone, m.state.totalProjects, m.state.documentsIndexed))

	summary := tuiDoneStyle.Render("indexing")
	if m.state.diagnostics > 0 {
		summary = tuiWarnStyle.Render(fmt.Sprintf("%d diagnostic(s)", m.state.diagnostics))
	}
	if m.state.finished {
		summary = tuiDoneStyle.Render("done")
	}

	header := fmt.Sprintf("%s\n%s | %s\n", tuiTitleStyle("lsifgo"), status, summary)
	return tuiDocStyle.Render(header)
}

// TUI is a ports.Reporter that drives a bubbletea progress display.
// Run must be called from the goroutine that owns the terminal; the
// pipeline itself calls the ports.Reporter methods from whatever
// goroutine runs the Driver.
type TUI struct {
	updates chan tuiMsg
	program *tea.Program

	totalProjects    int
	projectsDone     int
	documentsIndexed int
	diagnostics      int
}

// NewTUI constructs a TUI reporter. Call Run in its own goroutine before
// starting the pipeline, and Wait after the pipeline returns.
func NewTUI() *TUI {
	updates := make(chan tuiMsg, 8)
	return &TUI{
		updates: updates,
		program: tea.NewProgram(tuiModel{updates: updates}),
	}
}

// Run blocks running the bubbletea event loop; call it in its own
// goroutine.
func (t *TUI) Run() error {
	_, err := t.program.Run()
	return err
}

func (t *TUI) send(finished bool) {
	select {
	case t.updates <- tuiMsg{
		totalProjects:    t.totalProjects,
		projectsDone:     t.projectsDone,
		documentsIndexed: t.documentsIndexed,
		diagnostics:      t.diagnostics,
		finished:         finished,
	}:
	default:
		// Drop the update rather than block the pipeline on a UI that
		// isn't currently reading.
	}
}

func (t *TUI) Begin(totalProjects int) {
	t.totalProjects = totalProjects
	t.send(false)
}

func (t *TUI) Progress(documentsIndexed int) {
	t.documentsIndexed = documentsIndexed
	t.send(false)
}

func (t *TUI) ProjectDone(ports.ProjectSummary) {
	t.projectsDone++
	t.send(false)
}

func (t *TUI) ReportInternalSymbol(ports.Diagnostic) {
	t.diagnostics++
	t.send(false)
}

func (t *TUI) End() {
	t.send(true)
}
