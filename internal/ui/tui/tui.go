package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type TUI struct {
	program *tea.Program
}

func NewTUI(p *tea.Program) *TUI {
	return &TUI{program: p}
}

func (t *TUI) UpdateStatus(status string) {
	t.program.Send(StatusMsg(status))
}

func (t *TUI) UpdateCycle(cycle int) {
	t.program.Send(CycleMsg(cycle))
}

func (t *TUI) UpdateEarnings(total float64) {
	t.program.Send(EarningsMsg(total))
}

func (t *TUI) Log(msg string) {
	t.program.Send(LogMsg(msg))
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#F4A056")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	earningsStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD700"))
)

type Model struct {
	Title     string
	Status    string
	Cycle     int
	MaxCycles int
	Earnings  float64
	Log       []string
	Progress  progress.Model
	Viewport  viewport.Model
	Quitting  bool
	Ready     bool
	Width     int
	Height    int
}

type LogMsg string
type StatusMsg string
type CycleMsg int
type EarningsMsg float64

func NewModel(title string, maxCycles int) Model {
	p := progress.New(progress.WithDefaultGradient())
	return Model{
		Title:     title,
		Status:    "Initializing...",
		MaxCycles: maxCycles,
		Progress:  p,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			m.Quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		if !m.Ready {
			m.Viewport = viewport.New(msg.Width, msg.Height-10)
			m.Ready = true
		} else {
			m.Viewport.Width = msg.Width
			m.Viewport.Height = msg.Height - 10
		}

	case LogMsg:
		m.Log = append(m.Log, string(msg))
		m.Viewport.SetContent(strings.Join(m.Log, "\n"))
		m.Viewport.GotoBottom()

	case StatusMsg:
		m.Status = string(msg)

	case CycleMsg:
		m.Cycle = int(msg)

	case EarningsMsg:
		m.Earnings = float64(msg)
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// progressRatio maps the cycle counter into [0, 1] even when the mission
// carries no cycle count yet.
func (m Model) progressRatio() float64 {
	if m.MaxCycles <= 0 {
		return 0
	}
	r := float64(m.Cycle) / float64(m.MaxCycles)
	if r > 1 {
		r = 1
	}
	return r
}

func (m Model) View() string {
	if !m.Ready {
		return "\n  Initializing..."
	}

	header := titleStyle.Render(" AutoEarnPro Campaign ")
	status := infoStyle.Render(fmt.Sprintf(" Status: %s ", m.Status))
	cycle := fmt.Sprintf(" Cycle: %d/%d ", m.Cycle, m.MaxCycles)
	earnings := earningsStyle.Render(fmt.Sprintf(" $%.2f ", m.Earnings))

	prog := m.Progress.ViewAs(m.progressRatio())

	view := fmt.Sprintf("%s%s%s%s\n\n%s\n\n%s",
		header, status, cycle, earnings,
		m.Viewport.View(),
		prog)

	if m.Quitting {
		return view + "\n  Quitting...\n"
	}

	return view
}
