// Package capture drives scripted screenshots of a Bubble Tea model: a
// TOML config lists typed steps (capture, press, click, delay) and the
// driver applies them, writing each capture's rendered view to disk.
package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	tea "github.com/charmbracelet/bubbletea"
)

// Step types.
const (
	StepCapture = "capture"
	StepPress   = "press"
	StepClick   = "click"
	StepDelay   = "delay"
)

// Output formats.
const (
	FormatText = "text" // ANSI sequences stripped
	FormatANSI = "ansi" // rendered output verbatim
)

// Step is one scripted action.
type Step struct {
	Type    string `toml:"type"`
	Name    string `toml:"name"`     // capture: output file stem
	Keys    string `toml:"keys"`     // press: space/comma separated key names
	ID      string `toml:"id"`       // click: widget identifier
	DelayMS int    `toml:"delay_ms"` // delay: pause length
}

// Config describes one capture session.
type Config struct {
	Module    string   `toml:"module"`
	App       string   `toml:"app"`
	OutputDir string   `toml:"output_dir"`
	Formats   []string `toml:"formats"`
	Steps     []Step   `toml:"steps"`
}

// Load reads and validates a session config.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects incomplete configs before any step runs.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.App) == "" {
		return fmt.Errorf("app must be set")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir must be set")
	}
	if len(c.Formats) == 0 {
		c.Formats = []string{FormatText}
	}
	for _, f := range c.Formats {
		if f != FormatText && f != FormatANSI {
			return fmt.Errorf("unknown format %q", f)
		}
	}
	if len(c.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}
	for i, s := range c.Steps {
		if err := s.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (s Step) validate() error {
	switch s.Type {
	case StepCapture:
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("capture step needs a name")
		}
	case StepPress:
		if strings.TrimSpace(s.Keys) == "" {
			return fmt.Errorf("press step needs keys")
		}
	case StepClick:
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("click step needs an id")
		}
	case StepDelay:
		if s.DelayMS <= 0 {
			return fmt.Errorf("delay step needs a positive delay_ms")
		}
	default:
		return fmt.Errorf("unknown step type %q", s.Type)
	}
	return nil
}

// ClickMsg is delivered to the model for a click step; models that support
// scripted clicks handle it by activating the identified widget.
type ClickMsg struct {
	ID string
}

// Driver applies config steps to a model outside a terminal.
type Driver struct {
	cfg   Config
	model tea.Model
	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// NewDriver pairs a validated config with the model it scripts.
func NewDriver(cfg Config, model tea.Model) *Driver {
	return &Driver{cfg: cfg, model: model, sleep: time.Sleep}
}

// Run executes every step in order. Capture steps write
// <output_dir>/<name>.<ext> per configured format.
func (d *Driver) Run() error {
	if err := os.MkdirAll(d.cfg.OutputDir, 0o755); err != nil {
		return err
	}
	d.deliver(d.model.Init())

	for i, s := range d.cfg.Steps {
		var err error
		switch s.Type {
		case StepCapture:
			err = d.capture(s.Name)
		case StepPress:
			err = d.press(s.Keys)
		case StepClick:
			d.send(ClickMsg{ID: s.ID})
		case StepDelay:
			d.sleep(time.Duration(s.DelayMS) * time.Millisecond)
		}
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, s.Type, err)
		}
	}
	return nil
}

func (d *Driver) press(keys string) error {
	for _, name := range splitKeys(keys) {
		msg, err := keyMsg(name)
		if err != nil {
			return err
		}
		d.send(msg)
	}
	return nil
}

func (d *Driver) capture(name string) error {
	view := d.model.View()
	for _, format := range d.cfg.Formats {
		out := view
		ext := "txt"
		if format == FormatANSI {
			ext = "ans"
		} else {
			out = StripANSI(view)
		}
		path := filepath.Join(d.cfg.OutputDir, name+"."+ext)
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// maxCascade bounds how many follow-up messages one step may produce.
// Spinner and timer ticks reschedule themselves on every update; without a
// bound a step on a running row would never reach quiescence.
const maxCascade = 32

// send runs the message and the commands it produces until the model goes
// quiet or the cascade bound is hit. Batched commands unwind in order.
func (d *Driver) send(msg tea.Msg) {
	queue := []tea.Msg{msg}
	for n := 0; len(queue) > 0 && n < maxCascade; n++ {
		var cmd tea.Cmd
		next := queue[0]
		queue = queue[1:]
		d.model, cmd = d.model.Update(next)
		queue = append(queue, d.deliver(cmd)...)
	}
}

func (d *Driver) deliver(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, d.deliver(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func splitKeys(keys string) []string {
	fields := strings.FieldsFunc(keys, func(r rune) bool {
		return r == ' ' || r == ','
	})
	return fields
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"space":     tea.KeySpace,
	"tab":       tea.KeyTab,
	"esc":       tea.KeyEsc,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"backspace": tea.KeyBackspace,
}

func keyMsg(name string) (tea.Msg, error) {
	if t, ok := namedKeys[name]; ok {
		return tea.KeyMsg{Type: t}, nil
	}
	runes := []rune(name)
	if len(runes) != 1 {
		return nil, fmt.Errorf("unknown key %q", name)
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: runes}, nil
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// StripANSI removes SGR and cursor sequences from rendered output.
func StripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}
