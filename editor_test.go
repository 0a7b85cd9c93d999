package linkbox

import (
	"reflect"
	"strings"
	"testing"
)

func TestVSCodeCommand(t *testing.T) {
	cases := []struct {
		line, column int
		want         []string
	}{
		{0, 0, []string{"code", "--goto", "/tmp/x.go"}},
		{10, 0, []string{"code", "--goto", "/tmp/x.go:10"}},
		{10, 5, []string{"code", "--goto", "/tmp/x.go:10:5"}},
		// A column without a line is meaningless and dropped.
		{0, 5, []string{"code", "--goto", "/tmp/x.go"}},
	}
	for _, c := range cases {
		got := VSCodeCommand("/tmp/x.go", c.line, c.column)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("VSCodeCommand(line=%d, col=%d) = %v, want %v", c.line, c.column, got, c.want)
		}
	}
}

func TestVimCommand(t *testing.T) {
	got := VimCommand("/tmp/x.go", 12, 4)
	want := []string{"vim", "+call cursor(12,4)", "/tmp/x.go"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	// Unset column defaults to 1 so the cursor call stays valid.
	got = VimCommand("/tmp/x.go", 12, 0)
	want = []string{"vim", "+call cursor(12,1)", "/tmp/x.go"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	got = VimCommand("/tmp/x.go", 0, 0)
	want = []string{"vim", "/tmp/x.go"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNanoCommand(t *testing.T) {
	got := NanoCommand("/tmp/x.go", 8, 3)
	want := []string{"nano", "+8,3", "/tmp/x.go"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEclipseCommand(t *testing.T) {
	got := EclipseCommand("/tmp/x.go", 8, 3)
	want := []string{"eclipse", "--launcher.openFile", "/tmp/x.go:8"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExpandTemplateAllPlaceholders(t *testing.T) {
	tmpl := "{{ path }}|{{ path_name }}|{{ line }}|{{ column }}|{{ line_colon }}|{{ column_colon }}|{{ line_plus }}|{{ column_plus }}"
	got := ExpandTemplate(tmpl, "/src/app/main.go", 42, 5)
	want := "/src/app/main.go|main.go|42|5|:42|:5|+42|+5"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExpandTemplateUnsetPosition(t *testing.T) {
	tmpl := "edit {{ path }}{{ line_colon }}{{ column_colon }} {{ line_plus }}"
	got := ExpandTemplate(tmpl, "/src/main.go", 0, 0)
	if got != "edit /src/main.go " {
		t.Fatalf("got %q", got)
	}
}

func TestExpandTemplateWhitespaceInsidePlaceholders(t *testing.T) {
	if got := ExpandTemplate("{{path}} {{  line  }}", "/a", 3, 0); got != "/a 3" {
		t.Fatalf("got %q", got)
	}
}

func TestValidateTemplate(t *testing.T) {
	if err := ValidateTemplate(VSCodeTemplate); err != nil {
		t.Errorf("built-in template rejected: %v", err)
	}
	err := ValidateTemplate("edit {{ path }} --at {{ position }}")
	if err == nil {
		t.Fatal("unknown placeholder accepted")
	}
	if !strings.Contains(err.Error(), "position") {
		t.Errorf("error %q should name the bad placeholder", err)
	}
}

func TestCommandFromTemplateSplitsQuotedArgs(t *testing.T) {
	build := CommandFromTemplate(`myeditor "{{ path }}" --line {{ line }}`)
	got := build("/tmp/My Documents/x.go", 7, 0)
	want := []string{"myeditor", "/tmp/My Documents/x.go", "--line", "7"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestShellSplit(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a b c", []string{"a", "b", "c"}},
		{"  a   b  ", []string{"a", "b"}},
		{`a "b c" d`, []string{"a", "b c", "d"}},
		{`a 'b "c"' d`, []string{"a", `b "c"`, "d"}},
		{`""`, []string{""}},
		{"", nil},
	}
	for _, c := range cases {
		if got := shellSplit(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("shellSplit(%q) = %#v, want %#v", c.in, got, c.want)
		}
	}
}

func TestEditorConfigResolutionPriority(t *testing.T) {
	builder := func(path string, line, column int) []string { return []string{"builder", path} }
	defBuilder := func(path string, line, column int) []string { return []string{"default-builder", path} }

	cases := []struct {
		name string
		cfg  EditorConfig
		want string
	}{
		{"builder wins over everything", EditorConfig{Builder: builder, Template: "tmpl {{ path }}", DefaultBuilder: defBuilder, DefaultTemplate: "dt {{ path }}"}, "builder"},
		{"template beats defaults", EditorConfig{Template: "tmpl {{ path }}", DefaultBuilder: defBuilder}, "tmpl"},
		{"default builder beats default template", EditorConfig{DefaultBuilder: defBuilder, DefaultTemplate: "dt {{ path }}"}, "default-builder"},
		{"default template used when set", EditorConfig{DefaultTemplate: "dt {{ path }}"}, "dt"},
		{"zero config falls back to vscode", EditorConfig{}, "code"},
	}
	for _, c := range cases {
		build, err := c.cfg.resolve()
		if err != nil {
			t.Errorf("%s: resolve: %v", c.name, err)
			continue
		}
		argv := build("/f", 0, 0)
		if len(argv) == 0 || argv[0] != c.want {
			t.Errorf("%s: argv = %v, want first field %q", c.name, argv, c.want)
		}
	}
}

func TestEditorConfigResolveRejectsBadTemplate(t *testing.T) {
	_, err := EditorConfig{Template: "edit {{ nope }}"}.resolve()
	if err == nil {
		t.Fatal("invalid template accepted at resolution time")
	}
}
