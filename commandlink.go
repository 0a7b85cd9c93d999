package linkbox

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Default status glyphs.
const (
	StatusUnknown = "❓"
	StatusOK      = "✅"
	StatusFailed  = "❌"

	playGlyph     = "▶"
	stopGlyph     = "⏹"
	settingsGlyph = "⚙"
)

// CommandLink is a command row: status glyph (spinner while running),
// play/stop control, name (a FileLink when an output path is set), optional
// settings control and optional elapsed-time label. The widget itself only
// emits Play/Stop/Settings messages; the host flips the running state and
// timestamps when the command actually starts or stops.
type CommandLink struct {
	name string
	id   string

	outputPath string
	editor     EditorConfig
	link       *FileLink

	statusGlyph   string
	statusTooltip string
	running       bool

	showSettings bool
	showTimer    bool
	start        *time.Time
	end          *time.Time

	spin    spinner.Model
	keys    CommandKeyMap
	styles  Styles
	focused bool

	now func() time.Time
}

// CommandOption configures a CommandLink during construction.
type CommandOption func(*CommandLink) error

// WithOutputPath links the row name to an output file.
func WithOutputPath(path string) CommandOption {
	return func(c *CommandLink) error {
		c.outputPath = path
		return nil
	}
}

// WithOutputEditor selects how the output file opens.
func WithOutputEditor(editor EditorConfig) CommandOption {
	return func(c *CommandLink) error {
		c.editor = editor
		return nil
	}
}

// WithStatus sets the initial status glyph and tooltip.
func WithStatus(glyph, tooltip string) CommandOption {
	return func(c *CommandLink) error {
		c.statusGlyph = glyph
		c.statusTooltip = tooltip
		return nil
	}
}

// WithSettings shows the settings control.
func WithSettings() CommandOption {
	return func(c *CommandLink) error {
		c.showSettings = true
		return nil
	}
}

// WithTimer shows the elapsed-time label.
func WithTimer() CommandOption {
	return func(c *CommandLink) error {
		c.showTimer = true
		return nil
	}
}

// WithCommandID overrides the widget identifier; the default is SanitizeID
// of the name.
func WithCommandID(id string) CommandOption {
	return func(c *CommandLink) error {
		c.id = id
		return nil
	}
}

// WithCommandKeys rebinds row actions ("play-stop", "open-output",
// "settings") to other keys.
func WithCommandKeys(overrides map[string][]string) CommandOption {
	return func(c *CommandLink) error {
		c.keys = DefaultCommandKeyMap().With(overrides)
		return nil
	}
}

// WithCommandStyles replaces the default widget styles.
func WithCommandStyles(s Styles) CommandOption {
	return func(c *CommandLink) error {
		c.styles = s
		return nil
	}
}

// NewCommandLink builds a command row named name.
func NewCommandLink(name string, opts ...CommandOption) (*CommandLink, error) {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	c := &CommandLink{
		name:        name,
		statusGlyph: StatusUnknown,
		spin:        sp,
		keys:        DefaultCommandKeyMap(),
		styles:      DefaultStyles(),
		now:         time.Now,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.id == "" {
		c.id = SanitizeID(name)
	}
	if c.outputPath != "" {
		if err := c.setLink(c.outputPath); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *CommandLink) setLink(path string) error {
	link, err := NewFileLink(path,
		WithDisplayName(c.name),
		WithEditor(c.editor),
		WithStyles(c.styles),
	)
	if err != nil {
		return err
	}
	link.SetFocused(c.focused)
	c.link = link
	c.outputPath = link.Path()
	return nil
}

func (c *CommandLink) Name() string       { return c.name }
func (c *CommandLink) OutputPath() string { return c.outputPath }
func (c *CommandLink) Running() bool      { return c.running }
func (c *CommandLink) Status() string     { return c.statusGlyph }

func (c *CommandLink) ID() string          { return c.id }
func (c *CommandLink) FilterValue() string { return c.name + " " + c.outputPath }

func (c *CommandLink) SetFocused(focused bool) {
	c.focused = focused
	if c.link != nil {
		c.link.SetFocused(focused)
	}
}

func (c *CommandLink) IsFocused() bool { return c.focused }

// SetStatus replaces the status glyph and its tooltip.
func (c *CommandLink) SetStatus(glyph, tooltip string) {
	c.statusGlyph = glyph
	c.statusTooltip = tooltip
}

// StatusTooltip returns the current status help text.
func (c *CommandLink) StatusTooltip() string { return c.statusTooltip }

// SetOutputPath attaches, replaces or (with "") removes the output file.
func (c *CommandLink) SetOutputPath(path string) error {
	if path == "" {
		c.link = nil
		c.outputPath = ""
		return nil
	}
	return c.setLink(path)
}

// SetRunning flips the running state. Starting returns the commands that
// animate the spinner and drive the 1-second timer refresh.
func (c *CommandLink) SetRunning(running bool) tea.Cmd {
	was := c.running
	c.running = running
	if running && !was {
		c.spin = spinner.New(spinner.WithSpinner(spinner.MiniDot))
		return tea.Batch(c.spin.Tick, c.tick())
	}
	return nil
}

// SetStartTime records when the command started.
func (c *CommandLink) SetStartTime(t time.Time) { c.start = &t }

// SetEndTime records when the command finished.
func (c *CommandLink) SetEndTime(t time.Time) { c.end = &t }

// ClearTimes drops both timestamps.
func (c *CommandLink) ClearTimes() { c.start, c.end = nil, nil }

// ClearStartTime drops the start timestamp.
func (c *CommandLink) ClearStartTime() { c.start = nil }

// DurationString renders the elapsed run time, from start to end when both
// are set, otherwise from start to now. Empty without a start time.
func (c *CommandLink) DurationString() string {
	if c.start == nil {
		return ""
	}
	ref := c.now()
	if c.end != nil {
		ref = *c.end
	}
	return FormatDuration(ref.Sub(*c.start))
}

// TimeAgoString renders how long ago the command finished. Empty without
// an end time.
func (c *CommandLink) TimeAgoString() string {
	if c.end == nil {
		return ""
	}
	return FormatTimeAgo(c.now().Sub(*c.end))
}

func (c *CommandLink) elapsedLabel() string {
	if c.start != nil {
		return c.DurationString()
	}
	return c.TimeAgoString()
}

type timerTickMsg struct {
	id string
}

// tick reschedules itself every second while there is a label to refresh.
func (c *CommandLink) tick() tea.Cmd {
	id := c.id
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{id: id}
	})
}

func (c *CommandLink) timerActive() bool {
	return c.showTimer && (c.running || c.start != nil || c.end != nil)
}

// Play emits PlayMsg or, when already running, StopMsg.
func (c *CommandLink) Play() tea.Cmd {
	name, output := c.name, c.outputPath
	running := c.running
	return func() tea.Msg {
		if running {
			return StopMsg{Name: name, OutputPath: output}
		}
		return PlayMsg{Name: name, OutputPath: output}
	}
}

// OpenSettings emits SettingsMsg when the settings control is shown.
func (c *CommandLink) OpenSettings() tea.Cmd {
	if !c.showSettings {
		return nil
	}
	name, output := c.name, c.outputPath
	return func() tea.Msg {
		return SettingsMsg{Name: name, OutputPath: output}
	}
}

// OpenOutput launches the editor on the output file, if any.
func (c *CommandLink) OpenOutput() tea.Cmd {
	if c.link == nil {
		return nil
	}
	return c.link.Open()
}

func (c *CommandLink) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !c.running {
			return nil
		}
		var cmd tea.Cmd
		c.spin, cmd = c.spin.Update(msg)
		return cmd

	case timerTickMsg:
		if msg.id != c.id || !c.timerActive() {
			return nil
		}
		return c.tick()

	case tea.KeyMsg:
		if !c.focused {
			return nil
		}
		switch {
		case key.Matches(msg, c.keys.PlayStop):
			return c.Play()
		case key.Matches(msg, c.keys.OpenOutput):
			return c.OpenOutput()
		case key.Matches(msg, c.keys.Settings):
			return c.OpenSettings()
		}
	}
	return nil
}

func (c *CommandLink) View() string {
	var b strings.Builder

	if c.running {
		b.WriteString(c.styles.Status.Render(c.spin.View()))
	} else {
		b.WriteString(c.styles.Status.Render(c.statusGlyph))
	}

	control := playGlyph
	if c.running {
		control = stopGlyph
	}
	b.WriteString(c.styles.PlayStop.Render(control))

	if c.link != nil {
		b.WriteString(c.link.View())
	} else if c.focused {
		b.WriteString(c.styles.LinkFocused.Render(c.name))
	} else {
		b.WriteString(c.name)
	}

	if c.showSettings {
		b.WriteString(" ")
		b.WriteString(c.styles.PlayStop.Render(settingsGlyph))
	}

	if c.showTimer {
		if label := c.elapsedLabel(); label != "" {
			b.WriteString(" ")
			b.WriteString(c.styles.Elapsed.Render(label))
		}
	}

	return b.String()
}
