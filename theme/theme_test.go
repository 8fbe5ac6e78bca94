package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGPL(t *testing.T) {
	gpl := `GIMP Palette
Name: test
Columns: 2
# comment
  0   0   0	black
255 255 255	white
`
	path := filepath.Join(t.TempDir(), "test.gpl")
	if err := os.WriteFile(path, []byte(gpl), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Name != "test" || len(p.Colors) != 2 {
		t.Fatalf("palette = %+v", p)
	}
	if got := p.Lookup(0.5); got != (RGB{127, 127, 127}) {
		t.Fatalf("Lookup(0.5) = %v", got)
	}
	if got := p.Index(5); got != (RGB{255, 255, 255}) {
		t.Fatalf("Index past end = %v", got)
	}
}

func TestLoadGPLEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gpl")
	if err := os.WriteFile(path, []byte("GIMP Palette\nName: none\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGPL(path); err == nil {
		t.Fatal("palette without colors accepted")
	}
}

func TestDefaultPaletteEnds(t *testing.T) {
	p, err := LoadOrDefault("")
	if err != nil {
		t.Fatal(err)
	}
	if p.Lookup(RoleBG) != p.Colors[0] || p.Lookup(RoleSuccess) != p.Colors[len(p.Colors)-1] {
		t.Fatal("role ends do not hit palette ends")
	}
}

func TestGlyph(t *testing.T) {
	th := New(nil)
	tests := []struct {
		active, cursor, playhead bool
		want                     rune
	}{
		{false, false, false, '·'},
		{true, false, false, '●'},
		{false, false, true, '▶'},
		{true, false, true, '●'},
		{false, true, false, '○'},
		{true, true, false, '◉'},
		{false, true, true, '▷'},
	}
	for _, tt := range tests {
		if got := th.Glyph(tt.active, tt.cursor, tt.playhead); got != tt.want {
			t.Errorf("Glyph(%v, %v, %v) = %q, want %q", tt.active, tt.cursor, tt.playhead, got, tt.want)
		}
	}
}
