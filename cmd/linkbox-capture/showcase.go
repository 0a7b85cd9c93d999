package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eyecantell/linkbox"
	"github.com/eyecantell/linkbox/capture"
)

// showcase is the stock model scripted by capture sessions: one of each
// widget kind in a toggle/remove list.
type showcase struct {
	list   *linkbox.LinkList
	notice string
}

func newShowcase() (tea.Model, error) {
	list := linkbox.NewLinkList(
		linkbox.WithToggles(),
		linkbox.WithRemoveButtons(),
		linkbox.WithSize(78, 12),
	)

	plain, err := linkbox.NewFileLink("README.md")
	if err != nil {
		return nil, err
	}

	status, err := linkbox.NewIcon("status", "✅", linkbox.WithTooltip("Validated"))
	if err != nil {
		return nil, err
	}
	run, err := linkbox.NewIcon("run", "▶", linkbox.WithTooltip("Run script"), linkbox.WithClickable())
	if err != nil {
		return nil, err
	}
	decorated, err := linkbox.NewIconLink("main.go",
		[]linkbox.Icon{status}, []linkbox.Icon{run},
		linkbox.WithPosition(42, 5),
	)
	if err != nil {
		return nil, err
	}

	tests, err := linkbox.NewCommandLink("Tests",
		linkbox.WithOutputPath("test-output.log"),
		linkbox.WithTimer(),
		linkbox.WithSettings(),
	)
	if err != nil {
		return nil, err
	}

	for _, item := range []linkbox.Item{plain, decorated, tests} {
		if err := list.Add(item); err != nil {
			return nil, err
		}
	}
	list.SetFocused(true)

	return &showcase{list: list}, nil
}

func (s *showcase) Init() tea.Cmd { return nil }

func (s *showcase) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case capture.ClickMsg:
		if item, ok := s.list.Get(msg.ID); ok {
			if row, ok := item.(*linkbox.CommandLink); ok {
				return s, row.Play()
			}
		}
		return s, nil

	case linkbox.PlayMsg:
		if item, ok := s.list.Get(linkbox.SanitizeID(msg.Name)); ok {
			if row, ok := item.(*linkbox.CommandLink); ok {
				return s, row.SetRunning(true)
			}
		}
		return s, nil

	case linkbox.NotifyMsg:
		s.notice = msg.Text
		return s, nil
	}

	return s, s.list.Update(msg)
}

func (s *showcase) View() string {
	var b strings.Builder
	b.WriteString(s.list.View())
	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(s.notice)
	}
	return b.String()
}
