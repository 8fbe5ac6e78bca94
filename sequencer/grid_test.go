package sequencer

import "testing"

func TestToggleRoundTrip(t *testing.T) {
	g := NewGrid(8, 16)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			before := g.IsActive(r, c)
			g.Toggle(r, c)
			if g.IsActive(r, c) == before {
				t.Fatalf("toggle (%d,%d) did not flip", r, c)
			}
			g.Toggle(r, c)
			if g.IsActive(r, c) != before {
				t.Fatalf("double toggle (%d,%d) changed the cell", r, c)
			}
		}
	}
}

func TestClearIsAbsorbing(t *testing.T) {
	g := NewGrid(4, 4)
	g.Toggle(0, 0)
	g.Toggle(3, 2)
	g.Clear()
	if g.Any() {
		t.Fatal("cells remain after clear")
	}
	g.Clear()
	if g.Any() {
		t.Fatal("second clear changed the grid")
	}
}

func TestColumnAscending(t *testing.T) {
	g := NewGrid(8, 16)
	for _, r := range []int{5, 3, 1} {
		g.Toggle(r, 7)
	}
	got := g.Column(7)
	want := []int{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("column = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column = %v, want %v", got, want)
		}
	}
	if len(g.Column(0)) != 0 {
		t.Fatal("empty column not empty")
	}
}

func TestOutOfRangePanics(t *testing.T) {
	g := NewGrid(2, 2)
	tests := []struct {
		name string
		fn   func()
	}{
		{"toggle row", func() { g.Toggle(2, 0) }},
		{"read col", func() { g.IsActive(0, -1) }},
		{"column", func() { g.Column(2) }},
		{"zero size", func() { NewGrid(0, 4) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestCursorClamp(t *testing.T) {
	g := NewGrid(8, 16)
	var c Cursor

	if c.Move(Up, g) || c.Move(Left, g) {
		t.Fatal("move past top-left reported success")
	}
	if c != (Cursor{}) {
		t.Fatalf("cursor moved to %+v", c)
	}

	for i := 0; i < 20; i++ {
		c.Move(Down, g)
		c.Move(Right, g)
	}
	if c != (Cursor{Row: 7, Col: 15}) {
		t.Fatalf("cursor = %+v, want bottom-right corner", c)
	}
	if c.Move(Down, g) || c.Move(Right, g) {
		t.Fatal("move past bottom-right reported success")
	}
}
