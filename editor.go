package linkbox

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
)

// CommandBuilder produces the argv used to open a file in an editor.
// Line and column are zero when unset.
type CommandBuilder func(path string, line, column int) []string

// Built-in command templates. Templates expand the placeholders listed in
// ExpandTemplate and are shell-split into argv after expansion.
const (
	VSCodeTemplate  = "code --goto {{ path }}{{ line_colon }}{{ column_colon }}"
	VimTemplate     = "vim {{ line_plus }} {{ path }}"
	SublimeTemplate = "subl {{ path }}{{ line_colon }}{{ column_colon }}"
	NanoTemplate    = "nano {{ line_plus }} {{ path }}"
)

// EditorConfig selects how a link opens its file. The first non-empty
// source wins: Builder, Template, DefaultBuilder, DefaultTemplate, then the
// built-in VS Code builder. Resolution happens once, at widget
// construction; there is no mutable global default.
type EditorConfig struct {
	Builder         CommandBuilder
	Template        string
	DefaultBuilder  CommandBuilder
	DefaultTemplate string
}

func (c EditorConfig) resolve() (CommandBuilder, error) {
	pick := func(tmpl string) (CommandBuilder, error) {
		if err := ValidateTemplate(tmpl); err != nil {
			return nil, err
		}
		return CommandFromTemplate(tmpl), nil
	}
	switch {
	case c.Builder != nil:
		return c.Builder, nil
	case c.Template != "":
		return pick(c.Template)
	case c.DefaultBuilder != nil:
		return c.DefaultBuilder, nil
	case c.DefaultTemplate != "":
		return pick(c.DefaultTemplate)
	default:
		return VSCodeCommand, nil
	}
}

// VSCodeCommand opens a file with "code --goto path:line:column".
func VSCodeCommand(path string, line, column int) []string {
	target := path
	if line > 0 {
		target += ":" + strconv.Itoa(line)
		if column > 0 {
			target += ":" + strconv.Itoa(column)
		}
	}
	return []string{"code", "--goto", target}
}

// VimCommand opens a file in vim, placing the cursor when a position is set.
func VimCommand(path string, line, column int) []string {
	if line > 0 {
		col := column
		if col <= 0 {
			col = 1
		}
		return []string{"vim", fmt.Sprintf("+call cursor(%d,%d)", line, col), path}
	}
	return []string{"vim", path}
}

// NanoCommand opens a file in nano, placing the cursor when a position is set.
func NanoCommand(path string, line, column int) []string {
	if line > 0 {
		col := column
		if col <= 0 {
			col = 1
		}
		return []string{"nano", fmt.Sprintf("+%d,%d", line, col), path}
	}
	return []string{"nano", path}
}

// EclipseCommand opens a file with the Eclipse launcher.
func EclipseCommand(path string, line, _ int) []string {
	target := path
	if line > 0 {
		target += ":" + strconv.Itoa(line)
	}
	return []string{"eclipse", "--launcher.openFile", target}
}

// CopyLocation writes "path:line:column" to the system clipboard. Unset
// line/column default to 1 so the location stays pasteable into editors.
func CopyLocation(path string, line, column int) error {
	if line <= 0 {
		line = 1
	}
	if column <= 0 {
		column = 1
	}
	return clipboard.WriteAll(fmt.Sprintf("%s:%d:%d", path, line, column))
}

var placeholderRe = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

var templateVars = map[string]bool{
	"path":          true,
	"path_relative": true,
	"path_name":     true,
	"line":          true,
	"column":        true,
	"line_colon":    true,
	"column_colon":  true,
	"line_plus":     true,
	"column_plus":   true,
}

// ValidateTemplate rejects templates referencing unknown placeholders.
func ValidateTemplate(tmpl string) error {
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		if !templateVars[m[1]] {
			return fmt.Errorf("unknown template placeholder %q", m[1])
		}
	}
	return nil
}

// ExpandTemplate substitutes the template placeholders for a concrete file
// location:
//
//	{{ path }}           full path
//	{{ path_relative }}  path relative to the working directory
//	{{ path_name }}      base name only
//	{{ line }}           line number, "" when unset
//	{{ column }}         column number, "" when unset
//	{{ line_colon }}     ":42" form, "" when unset
//	{{ column_colon }}   ":5" form, "" when unset
//	{{ line_plus }}      "+42" form, "" when unset
//	{{ column_plus }}    "+5" form, "" when unset
func ExpandTemplate(tmpl, path string, line, column int) string {
	rel := path
	if wd, err := filepath.Abs("."); err == nil {
		if r, err := filepath.Rel(wd, path); err == nil {
			rel = r
		}
	}
	num := func(n int) string {
		if n <= 0 {
			return ""
		}
		return strconv.Itoa(n)
	}
	affix := func(prefix string, n int) string {
		if n <= 0 {
			return ""
		}
		return prefix + strconv.Itoa(n)
	}
	values := map[string]string{
		"path":          path,
		"path_relative": rel,
		"path_name":     filepath.Base(path),
		"line":          num(line),
		"column":        num(column),
		"line_colon":    affix(":", line),
		"column_colon":  affix(":", column),
		"line_plus":     affix("+", line),
		"column_plus":   affix("+", column),
	}
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		if v, ok := values[name]; ok {
			return v
		}
		return m
	})
}

// CommandFromTemplate converts a command template into a builder. The
// expanded command line is shell-split, so templates may quote arguments
// that contain spaces: `myeditor "{{ path }}" --line {{ line }}`.
func CommandFromTemplate(tmpl string) CommandBuilder {
	return func(path string, line, column int) []string {
		return shellSplit(ExpandTemplate(tmpl, path, line, column))
	}
}

// shellSplit splits a command line into fields honoring single and double
// quotes. Substituted values are not re-quoted, so splitting happens here
// rather than handing the whole line to the shell.
func shellSplit(s string) []string {
	var (
		fields  []string
		cur     strings.Builder
		inField bool
		quote   rune
	)
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inField = true
		case r == ' ' || r == '\t':
			if inField {
				fields = append(fields, cur.String())
				cur.Reset()
				inField = false
			}
		default:
			cur.WriteRune(r)
			inField = true
		}
	}
	if inField {
		fields = append(fields, cur.String())
	}
	return fields
}
