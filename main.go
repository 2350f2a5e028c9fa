//go:build !gui

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/metcalfc/shelf/cmd"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	savedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)

	completeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)
)

type model struct {
	*cmd.Session
	view     viewport.Model
	ready    bool
	quitting bool
	saveErr  error
	width    int
	height   int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "right", "n", "l":
			if m.Pager.Next() {
				m.turned()
			}
			return m, nil

		case "left", "p", "h":
			if m.Pager.Prev() {
				m.turned()
			}
			return m, nil

		case "g":
			m.view.GotoTop()
			return m, nil

		case "G":
			m.view.GotoBottom()
			return m, nil

		case "q", "Q", "ctrl+c":
			m.quitting = true
			m.save()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve 2 lines: 1 for status at top, 1 for controls at bottom
		avail := max(1, m.height-2)
		if !m.ready {
			m.view = viewport.New(m.width, avail)
			m.ready = true
		} else {
			m.view.Width = m.width
			m.view.Height = avail
		}
		m.setContent()
		return m, nil
	}

	var c tea.Cmd
	m.view, c = m.view.Update(msg)
	return m, c
}

// turned refreshes the page after a chapter change and records progress.
func (m *model) turned() {
	m.setContent()
	m.view.GotoTop()
	m.save()
}

func (m *model) save() {
	if m.Save == nil {
		return
	}
	if err := m.Save(m.Pager.Percent()); err != nil {
		m.saveErr = err
		slog.Warn("could not save progress", "book", m.Book.ID, "error", err)
	}
}

func (m *model) setContent() {
	width := max(20, m.width-2)
	m.view.SetContent(lipgloss.NewStyle().Width(width).Render(m.Pager.Text()))
}

func (m model) View() string {
	if m.quitting {
		if m.Pager.AtEnd() {
			return completeStyle.Render(fmt.Sprintf("\n  Finished %s!\n", m.Book.Title))
		}
		return ""
	}

	if len(m.Pager.Chapters) == 0 {
		return "No text to read."
	}
	if !m.ready {
		return "Loading..."
	}

	current, total := m.Pager.Progress()
	saved := ""
	if m.Save != nil && m.saveErr == nil {
		saved = savedStyle.Render(" [saved]")
	}
	status := headerStyle.Render(m.Book.Title) + statusStyle.Render(
		fmt.Sprintf("Chapter %d/%d | %d%% | ~%s | %.0f%% of chapter%s",
			current,
			total,
			m.Pager.Percent(),
			m.Pager.ReadingTime().Round(time.Second),
			m.view.ScrollPercent()*100,
			saved,
		),
	)

	controls := controlsStyle.Render("←/→: chapter  ↑/↓ PgUp/PgDn: scroll  g/G: top/bottom  Q: quit")

	var sb strings.Builder
	sb.WriteString(status)
	sb.WriteString("\n")
	sb.WriteString(m.view.View())
	sb.WriteString("\n")
	sb.WriteString(controls)
	return sb.String()
}

func newModel(s *cmd.Session) model {
	return model{
		Session: s,
		width:   80,
		height:  24,
	}
}

func runTUI(ctx context.Context, s *cmd.Session) error {
	p := tea.NewProgram(newModel(s), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func main() {
	cmd.Execute(runTUI)
}
