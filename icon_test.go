package linkbox

import (
	"strings"
	"testing"
)

func TestNewIconDefaults(t *testing.T) {
	ic, err := NewIcon("status", "✅")
	if err != nil {
		t.Fatalf("NewIcon: %v", err)
	}
	if !ic.Visible {
		t.Error("icons should default to visible")
	}
	if ic.Index != IndexAuto {
		t.Errorf("default index = %d, want IndexAuto", ic.Index)
	}
	if ic.Clickable {
		t.Error("icons should default to non-clickable")
	}
}

func TestNewIconValidation(t *testing.T) {
	cases := []struct {
		name    string
		glyph   string
		opts    []IconOption
		wantErr string
	}{
		{"", "x", nil, "name"},
		{"   ", "x", nil, "name"},
		{"run", "", nil, "glyph"},
		{"run", "  ", nil, "glyph"},
		{"run", "▶", []IconOption{WithKey("ab")}, "single character"},
		{"run", "▶", []IconOption{WithIndex(-2)}, "index"},
	}
	for _, c := range cases {
		_, err := NewIcon(c.name, c.glyph, c.opts...)
		if err == nil {
			t.Errorf("NewIcon(%q, %q) succeeded, want error containing %q", c.name, c.glyph, c.wantErr)
			continue
		}
		if !strings.Contains(err.Error(), c.wantErr) {
			t.Errorf("NewIcon(%q, %q) error = %q, want it to mention %q", c.name, c.glyph, err, c.wantErr)
		}
	}
}

func TestNewIconMultiRuneKeyRejectedSingleRuneAccepted(t *testing.T) {
	if _, err := NewIcon("run", "▶", WithKey("é")); err != nil {
		t.Errorf("single multi-byte rune key rejected: %v", err)
	}
	if _, err := NewIcon("run", "▶", WithKey("éé")); err == nil {
		t.Error("two-rune key accepted, want error")
	}
}

func mustIcon(t *testing.T, name, glyph string, opts ...IconOption) Icon {
	t.Helper()
	ic, err := NewIcon(name, glyph, opts...)
	if err != nil {
		t.Fatalf("NewIcon(%q): %v", name, err)
	}
	return ic
}

func iconNames(icons []Icon) []string {
	names := make([]string, len(icons))
	for i, ic := range icons {
		names[i] = ic.Name
	}
	return names
}

func TestOrderIconsExplicitBeforeImplicit(t *testing.T) {
	icons := []Icon{
		mustIcon(t, "first-added", "a"),
		mustIcon(t, "indexed-late", "b", WithIndex(5)),
		mustIcon(t, "second-added", "c"),
		mustIcon(t, "indexed-early", "d", WithIndex(1)),
	}
	got := iconNames(OrderIcons(icons))
	want := []string{"indexed-early", "indexed-late", "first-added", "second-added"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("OrderIcons order = %v, want %v", got, want)
		}
	}
}

func TestOrderIconsTieBreaksByName(t *testing.T) {
	icons := []Icon{
		mustIcon(t, "zeta", "z", WithIndex(3)),
		mustIcon(t, "alpha", "a", WithIndex(3)),
		mustIcon(t, "mid", "m", WithIndex(3)),
	}
	got := iconNames(OrderIcons(icons))
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tie-break order = %v, want %v", got, want)
		}
	}
}

func TestOrderIconsDeterministic(t *testing.T) {
	icons := []Icon{
		mustIcon(t, "c", "1"),
		mustIcon(t, "a", "2", WithIndex(0)),
		mustIcon(t, "b", "3", WithIndex(0)),
		mustIcon(t, "d", "4"),
	}
	first := iconNames(OrderIcons(icons))
	for i := 0; i < 10; i++ {
		again := iconNames(OrderIcons(icons))
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d produced %v, first run produced %v", i, again, first)
			}
		}
	}
}

func TestOrderIconsSkipsHiddenWithoutReordering(t *testing.T) {
	icons := []Icon{
		mustIcon(t, "a", "1"),
		mustIcon(t, "b", "2"),
		mustIcon(t, "c", "3"),
	}
	icons[1].Visible = false
	got := iconNames(OrderIcons(icons))
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("hidden icon handling order = %v, want [a c]", got)
	}

	// Restoring visibility puts the icon back in its original position.
	icons[1].Visible = true
	got = iconNames(OrderIcons(icons))
	if len(got) != 3 || got[1] != "b" {
		t.Fatalf("restored order = %v, want [a b c]", got)
	}
}
