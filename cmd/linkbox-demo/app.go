package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eyecantell/linkbox"
	"github.com/eyecantell/linkbox/runner"
)

type focusArea int

const (
	focusSearch focusArea = iota
	focusList
)

// App is the orchestration demo: the stored command set rendered as
// command rows, a fuzzy search box, and an output pane streaming the
// selected command's run.
type App struct {
	store *Store

	list   *linkbox.LinkList
	search textinput.Model
	output viewport.Model

	focus       focusArea
	width       int
	height      int
	status      string
	statusIsErr bool

	// One command may run at a time.
	runningName string
	runStarted  time.Time
	cancelRun   context.CancelFunc
	outputChan  chan runner.OutputMsg
	outputLines []string

	styles linkbox.Styles
}

type outputMsg runner.OutputMsg

func NewApp(store *Store) (*App, error) {
	commands, err := store.List()
	if err != nil {
		return nil, err
	}

	search := textinput.New()
	search.Placeholder = "Search commands..."
	search.Focus()

	list := linkbox.NewLinkList(
		linkbox.WithToggles(),
		linkbox.WithRemoveButtons(),
	)
	for _, c := range commands {
		row, err := commandRow(c)
		if err != nil {
			return nil, err
		}
		if err := list.Add(row); err != nil {
			return nil, err
		}
	}

	return &App{
		store:  store,
		list:   list,
		search: search,
		output: viewport.New(80, 10),
		styles: linkbox.DefaultStyles(),
	}, nil
}

func commandRow(c Command) (*linkbox.CommandLink, error) {
	opts := []linkbox.CommandOption{
		linkbox.WithTimer(),
		linkbox.WithSettings(),
	}
	if c.OutputPath != "" {
		opts = append(opts, linkbox.WithOutputPath(c.OutputPath))
	}
	if c.LastStatus != "" {
		opts = append(opts, linkbox.WithStatus(c.LastStatus, "Last run "+c.LastStatus))
	}
	row, err := linkbox.NewCommandLink(c.Name, opts...)
	if err != nil {
		return nil, err
	}
	if c.LastRunAt != nil {
		row.SetStartTime(*c.LastRunAt)
		if c.LastRunFor != nil {
			row.SetEndTime(c.LastRunAt.Add(*c.LastRunFor))
		}
	}
	return row, nil
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width - 4
		a.height = msg.Height - 2
		a.output.Width = a.width
		a.output.Height = a.height / 3
		a.list.SetSize(a.width, a.height-a.output.Height-8)
		return a, nil

	case linkbox.PlayMsg:
		return a, a.startCommand(msg.Name)

	case linkbox.StopMsg:
		a.stopCommand(msg.Name)
		return a, nil

	case linkbox.SettingsMsg:
		a.setStatus(fmt.Sprintf("settings for %s", msg.Name), false)
		return a, nil

	case linkbox.OpenedMsg:
		a.setStatus("opened "+msg.Path, false)
		return a, nil

	case linkbox.RemovedMsg:
		a.deleteCommand(msg.ID)
		return a, nil

	case linkbox.ToggledMsg:
		return a, nil

	case linkbox.NotifyMsg:
		a.setStatus(msg.Text, msg.IsErr)
		return a, nil

	case outputMsg:
		return a, a.handleOutput(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, a.list.Update(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if a.cancelRun != nil {
			a.cancelRun()
		}
		return a, tea.Quit

	case "tab":
		if a.focus == focusSearch {
			a.focus = focusList
			a.search.Blur()
			a.list.SetFocused(true)
		} else {
			a.focus = focusSearch
			a.list.SetFocused(false)
			a.search.Focus()
		}
		return a, nil

	case "ctrl+a":
		return a, a.list.ToggleAll(true)

	case "ctrl+d":
		return a, a.list.RemoveToggled()
	}

	if a.focus == focusSearch {
		if msg.String() == "q" && a.search.Value() == "" {
			if a.cancelRun != nil {
				a.cancelRun()
			}
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		a.list.SetFilter(a.search.Value())
		return a, cmd
	}

	return a, a.list.Update(msg)
}

func (a *App) row(name string) *linkbox.CommandLink {
	item, ok := a.list.Get(linkbox.SanitizeID(name))
	if !ok {
		return nil
	}
	row, _ := item.(*linkbox.CommandLink)
	return row
}

func (a *App) startCommand(name string) tea.Cmd {
	if a.runningName != "" {
		a.setStatus(fmt.Sprintf("%s is still running", a.runningName), true)
		return nil
	}
	commands, err := a.store.List()
	if err != nil {
		a.setStatus(err.Error(), true)
		return nil
	}
	var cmdline string
	for _, c := range commands {
		if c.Name == name {
			cmdline = c.Cmdline
			break
		}
	}
	if cmdline == "" {
		a.setStatus("unknown command "+name, true)
		return nil
	}

	row := a.row(name)
	if row == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.runningName = name
	a.runStarted = time.Now()
	a.cancelRun = cancel
	a.outputLines = []string{a.styles.Muted.Render("$ " + cmdline), ""}
	a.output.SetContent(strings.Join(a.outputLines, "\n"))

	a.outputChan = make(chan runner.OutputMsg)
	go runner.Run(ctx, cmdline, a.outputChan)

	row.ClearTimes()
	row.SetStartTime(a.runStarted)
	spin := row.SetRunning(true)

	return tea.Batch(spin, waitForOutput(a.outputChan))
}

// deleteCommand removes the stored command whose sanitized name matches a
// widget ID.
func (a *App) deleteCommand(id string) {
	commands, err := a.store.List()
	if err != nil {
		a.setStatus(err.Error(), true)
		return
	}
	for _, c := range commands {
		if linkbox.SanitizeID(c.Name) != id {
			continue
		}
		if err := a.store.Delete(c.Name); err != nil {
			a.setStatus(err.Error(), true)
			return
		}
		a.setStatus("removed "+c.Name, false)
		return
	}
}

func (a *App) stopCommand(name string) {
	if a.cancelRun != nil && a.runningName == name {
		a.cancelRun()
	}
}

func (a *App) handleOutput(msg outputMsg) tea.Cmd {
	if msg.Done {
		name := a.runningName
		started := a.runStarted
		a.runningName = ""
		a.cancelRun = nil
		a.outputChan = nil

		status := linkbox.StatusOK
		if msg.ErrMsg != "" {
			status = linkbox.StatusFailed
			a.outputLines = append(a.outputLines, a.styles.Error.Render("Error: "+msg.ErrMsg))
		}
		a.output.SetContent(strings.Join(a.outputLines, "\n"))
		a.output.GotoBottom()

		if row := a.row(name); row != nil {
			row.SetRunning(false)
			row.SetEndTime(time.Now())
			row.SetStatus(status, "Last run "+status)
		}
		if err := a.store.RecordRun(name, status, started, time.Since(started)); err != nil {
			a.setStatus(err.Error(), true)
		}
		return nil
	}

	line := msg.Line
	if msg.IsErr {
		line = a.styles.Error.Render(line)
	}
	a.outputLines = append(a.outputLines, line)
	a.output.SetContent(strings.Join(a.outputLines, "\n"))
	a.output.GotoBottom()
	return waitForOutput(a.outputChan)
}

func waitForOutput(ch chan runner.OutputMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return outputMsg{Done: true}
		}
		return outputMsg(msg)
	}
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusIsErr = isErr
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(a.styles.Cursor.Render("linkbox"))
	b.WriteString("\n\n")
	b.WriteString(a.search.View())
	b.WriteString("\n\n")
	b.WriteString(a.list.View())
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("OUTPUT"))
	b.WriteString("\n")
	b.WriteString(a.output.View())
	b.WriteString("\n")

	if a.status != "" {
		style := a.styles.Muted
		if a.statusIsErr {
			style = a.styles.Error
		}
		b.WriteString(style.Render(a.status))
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Muted.Render(
		"tab focus • space/p run • o output • x toggle • backspace remove • ctrl+a all • ctrl+d drop toggled • q quit"))

	return b.String()
}
