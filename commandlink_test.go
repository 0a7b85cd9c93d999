package linkbox

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewCommandLinkDefaults(t *testing.T) {
	c, err := NewCommandLink("Run Tests")
	if err != nil {
		t.Fatalf("NewCommandLink: %v", err)
	}
	if c.ID() != "run-tests" {
		t.Errorf("id = %q, want sanitized name", c.ID())
	}
	if c.Status() != StatusUnknown {
		t.Errorf("status = %q, want unknown", c.Status())
	}
	if c.Running() {
		t.Error("rows start idle")
	}
	if c.OutputPath() != "" {
		t.Errorf("output path = %q, want none", c.OutputPath())
	}
}

func TestNewCommandLinkWithOutputPath(t *testing.T) {
	c, err := NewCommandLink("Tests", WithOutputPath("out/test.log"))
	if err != nil {
		t.Fatalf("NewCommandLink: %v", err)
	}
	if c.OutputPath() == "" || !strings.HasSuffix(c.OutputPath(), "test.log") {
		t.Errorf("output path = %q", c.OutputPath())
	}
	if c.OpenOutput() == nil {
		t.Error("row with output should open it")
	}
}

func TestCommandLinkSetOutputPath(t *testing.T) {
	c, err := NewCommandLink("Tests")
	if err != nil {
		t.Fatalf("NewCommandLink: %v", err)
	}
	if c.OpenOutput() != nil {
		t.Fatal("row without output opened something")
	}
	if err := c.SetOutputPath("out/test.log"); err != nil {
		t.Fatalf("SetOutputPath: %v", err)
	}
	if c.OpenOutput() == nil {
		t.Fatal("attached output not openable")
	}
	if err := c.SetOutputPath(""); err != nil {
		t.Fatalf("SetOutputPath(\"\"): %v", err)
	}
	if c.OpenOutput() != nil {
		t.Fatal("detached output still openable")
	}
}

func TestCommandLinkPlayStopMessages(t *testing.T) {
	c, err := NewCommandLink("Tests", WithOutputPath("out/test.log"))
	if err != nil {
		t.Fatalf("NewCommandLink: %v", err)
	}

	msg := c.Play()()
	play, ok := msg.(PlayMsg)
	if !ok {
		t.Fatalf("got %T, want PlayMsg", msg)
	}
	if play.Name != "Tests" || play.OutputPath != c.OutputPath() {
		t.Errorf("PlayMsg = %+v", play)
	}

	c.SetRunning(true)
	msg = c.Play()()
	if _, ok := msg.(StopMsg); !ok {
		t.Fatalf("got %T, want StopMsg while running", msg)
	}
}

func TestCommandLinkSetRunningCommands(t *testing.T) {
	c, err := NewCommandLink("Tests", WithTimer())
	if err != nil {
		t.Fatalf("NewCommandLink: %v", err)
	}
	if cmd := c.SetRunning(true); cmd == nil {
		t.Fatal("starting should return spinner and timer commands")
	}
	// Already running, no extra commands.
	if cmd := c.SetRunning(true); cmd != nil {
		t.Fatal("redundant start returned commands")
	}
	if cmd := c.SetRunning(false); cmd != nil {
		t.Fatal("stopping returned commands")
	}
}

func TestCommandLinkTimingScenario(t *testing.T) {
	c, err := NewCommandLink("Tests", WithTimer())
	if err != nil {
		t.Fatalf("NewCommandLink: %v", err)
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if c.DurationString() != "" || c.TimeAgoString() != "" {
		t.Fatal("labels should be empty without timestamps")
	}

	// Running: duration measured against the clock.
	c.SetStartTime(now.Add(-90 * time.Second))
	if got := c.DurationString(); got != "1m 30s" {
		t.Errorf("running duration = %q, want 1m 30s", got)
	}

	// Finished: duration measured start to end.
	c.SetEndTime(now.Add(-10 * time.Second))
	if got := c.DurationString(); got != "1m 20s" {
		t.Errorf("finished duration = %q, want 1m 20s", got)
	}

	// Only an end time: the label switches to time-ago.
	c.ClearStartTime()
	c.SetEndTime(now.Add(-65 * time.Second))
	if got := c.DurationString(); got != "" {
		t.Errorf("duration without start = %q, want empty", got)
	}
	if got := c.TimeAgoString(); got != "1m ago" {
		t.Errorf("time ago = %q, want 1m ago", got)
	}
	if got := c.elapsedLabel(); got != "1m ago" {
		t.Errorf("elapsed label = %q, want time-ago form", got)
	}

	c.ClearTimes()
	if c.elapsedLabel() != "" {
		t.Error("cleared row still shows a label")
	}
}

func TestCommandLinkViewShowsControlState(t *testing.T) {
	c, err := NewCommandLink("Tests", WithStatus(StatusOK, "passed"), WithSettings())
	if err != nil {
		t.Fatalf("NewCommandLink: %v", err)
	}
	view := c.View()
	for _, want := range []string{StatusOK, playGlyph, "Tests", settingsGlyph} {
		if !strings.Contains(view, want) {
			t.Errorf("idle View() = %q, missing %q", view, want)
		}
	}

	c.SetRunning(true)
	view = c.View()
	if !strings.Contains(view, stopGlyph) {
		t.Errorf("running View() = %q, missing stop control", view)
	}
	if strings.Contains(view, StatusOK) {
		t.Errorf("running View() = %q, status glyph should yield to the spinner", view)
	}
}

func TestCommandLinkKeyHandling(t *testing.T) {
	c, err := NewCommandLink("Tests", WithSettings(), WithOutputPath("out/test.log"))
	if err != nil {
		t.Fatalf("NewCommandLink: %v", err)
	}

	space := tea.KeyMsg{Type: tea.KeySpace}
	if cmd := c.Update(space); cmd != nil {
		t.Fatal("unfocused row reacted to keys")
	}

	c.SetFocused(true)
	cmd := c.Update(space)
	if cmd == nil {
		t.Fatal("space ignored")
	}
	if _, ok := cmd().(PlayMsg); !ok {
		t.Fatalf("space produced %T, want PlayMsg", cmd())
	}

	cmd = c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if cmd == nil {
		t.Fatal("settings key ignored")
	}
	if _, ok := cmd().(SettingsMsg); !ok {
		t.Fatalf("settings key produced %T, want SettingsMsg", cmd())
	}
}

func TestCommandLinkTimerTickFiltersByID(t *testing.T) {
	c, err := NewCommandLink("Tests", WithTimer())
	if err != nil {
		t.Fatalf("NewCommandLink: %v", err)
	}
	c.SetRunning(true)
	if cmd := c.Update(timerTickMsg{id: "someone-else"}); cmd != nil {
		t.Fatal("tick for another row rescheduled")
	}
	if cmd := c.Update(timerTickMsg{id: c.ID()}); cmd == nil {
		t.Fatal("own tick not rescheduled")
	}

	// Idle with no timestamps, the timer winds down.
	c.SetRunning(false)
	c.ClearTimes()
	if cmd := c.Update(timerTickMsg{id: c.ID()}); cmd != nil {
		t.Fatal("timer kept running with nothing to refresh")
	}
}
