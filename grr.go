//go:build gui

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/metcalfc/shelf/cmd"
)

type model struct {
	*cmd.Session
	tocVisible bool
}

func newModel(s *cmd.Session) *model {
	return &model{Session: s}
}

// status describes the reading position for the status bar.
func (m *model) status() string {
	current, total := m.Pager.Progress()
	return fmt.Sprintf("Chapter %d/%d | %d%% | ~%s",
		current, total, m.Pager.Percent(), m.Pager.ReadingTime())
}

func (m *model) save() {
	if m.Save == nil {
		return
	}
	if err := m.Save(m.Pager.Percent()); err != nil {
		slog.Warn("could not save progress", "book", m.Book.ID, "error", err)
	}
}

func runGUI(ctx context.Context, s *cmd.Session) error {
	m := newModel(s)

	a := app.New()
	w := a.NewWindow(s.Book.Title + " - shelf")

	statusLabel := widget.NewLabel(m.status())
	statusLabel.Alignment = fyne.TextAlignCenter

	controlsLabel := widget.NewLabel("←/→: chapter  T: chapters  F: fullscreen  Q: quit")
	controlsLabel.Alignment = fyne.TextAlignCenter

	text := widget.NewLabel(m.Pager.Text())
	text.Wrapping = fyne.TextWrapWord
	scroll := container.NewVScroll(text)

	updateDisplay := func() {
		text.SetText(m.Pager.Text())
		scroll.ScrollToTop()
		statusLabel.SetText(m.status())
	}

	tocList := widget.NewList(
		func() int { return len(m.Pager.Chapters) },
		func() fyne.CanvasObject {
			return widget.NewLabel("Chapter")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(fmt.Sprintf("%d. %s", id+1, chapterTitle(m.Pager.Chapters[id])))
		},
	)

	readingContent := container.NewBorder(
		statusLabel,
		controlsLabel,
		nil, nil,
		scroll,
	)

	tocContainer := container.NewBorder(
		widget.NewLabel("Chapters"),
		widget.NewLabel("Click to jump • T to close"),
		nil, nil,
		tocList,
	)
	tocPanel := container.NewHSplit(tocContainer, readingContent)
	tocPanel.Offset = 0.33
	tocContainer.Hide()

	tocList.OnSelected = func(id widget.ListItemID) {
		if m.Pager.Jump(id) {
			m.save()
			updateDisplay()
		}
	}

	turn := func(ok bool) {
		if ok {
			m.save()
			updateDisplay()
		}
	}

	w.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeyRight:
			turn(m.Pager.Next())
		case fyne.KeyLeft:
			turn(m.Pager.Prev())
		case fyne.KeyF:
			w.SetFullScreen(!w.FullScreen())
		case fyne.KeyT:
			m.tocVisible = !m.tocVisible
			if m.tocVisible {
				tocContainer.Show()
			} else {
				tocContainer.Hide()
			}
			tocPanel.Refresh()
		case fyne.KeyQ:
			m.save()
			a.Quit()
		}
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(a.Quit)
		case <-done:
		}
	}()

	w.SetOnClosed(m.save)
	w.Resize(fyne.NewSize(800, 600))
	w.SetContent(container.NewStack(tocPanel))
	w.ShowAndRun()
	return nil
}

// chapterTitle is the first line of a chapter, shortened for the list.
func chapterTitle(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	if r := []rune(line); len(r) > 40 {
		return string(r[:40]) + "..."
	}
	return line
}

func main() {
	cmd.Execute(runGUI)
}
