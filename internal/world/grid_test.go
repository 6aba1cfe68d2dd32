package world

import "testing"

func TestGrid_IsWall(t *testing.T) {
	g := DefaultGrid(64)

	tests := []struct {
		name   string
		x, y   int
		want   Material
		isWall bool
	}{
		{"corner wall", 0, 0, 1, true},
		{"east edge", 7, 1, 2, true},
		{"interior block", 3, 3, 1, true},
		{"interior block east", 4, 3, 3, true},
		{"empty floor", 1, 1, Empty, false},
		{"negative x", -1, 2, Empty, false},
		{"past width", 8, 2, Empty, false},
		{"past height", 2, 8, Empty, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := g.IsWall(tt.x, tt.y)
			if m != tt.want || ok != tt.isWall {
				t.Errorf("IsWall(%d,%d) = (%d,%v), want (%d,%v)", tt.x, tt.y, m, ok, tt.want, tt.isWall)
			}
		})
	}
}

func TestGrid_CellOfAndWorldSize(t *testing.T) {
	g := DefaultGrid(64)

	if x, y := g.CellOf(100, 100); x != 1 || y != 1 {
		t.Errorf("CellOf(100,100) = (%d,%d), want (1,1)", x, y)
	}
	if x, y := g.CellOf(-0.5, 63.9); x != -1 || y != 0 {
		t.Errorf("CellOf(-0.5,63.9) = (%d,%d), want (-1,0)", x, y)
	}
	if w, h := g.WorldSize(); w != 512 || h != 512 {
		t.Errorf("WorldSize = (%v,%v), want (512,512)", w, h)
	}
}

func TestGrid_StartPosition(t *testing.T) {
	g := DefaultGrid(64)
	x, y, err := g.StartPosition()
	if err != nil {
		t.Fatalf("StartPosition: %v", err)
	}
	if x != 288 || y != 288 {
		t.Errorf("start = (%v,%v), want (288,288)", x, y)
	}

	// Without a declared start the first empty cell is used
	g.StartX, g.StartY = -1, -1
	x, y, err = g.StartPosition()
	if err != nil {
		t.Fatalf("StartPosition fallback: %v", err)
	}
	if x != 96 || y != 32 {
		t.Errorf("fallback start = (%v,%v), want (96,32)", x, y)
	}

	full, err := NewGridFromRows([][]Material{{1, 1}, {1, 1}}, 64)
	if err != nil {
		t.Fatalf("NewGridFromRows: %v", err)
	}
	if _, _, err := full.StartPosition(); err == nil {
		t.Error("expected error for a grid without empty cells")
	}
}

func TestGrid_TileChecker(t *testing.T) {
	g := DefaultGrid(64)
	if !g.IsTileBlocking(-1, 0) || !g.IsTileBlocking(0, 8) {
		t.Error("cells outside the grid must block")
	}
	if g.IsTileBlocking(1, 1) {
		t.Error("empty cell must not block")
	}
	if w, h := g.GetWorldBounds(); w != 8 || h != 8 {
		t.Errorf("GetWorldBounds = (%d,%d), want (8,8)", w, h)
	}
	if got := g.MaxMaterial(); got != 3 {
		t.Errorf("MaxMaterial = %d, want 3", got)
	}
}

func TestNewGridFromRows_Errors(t *testing.T) {
	if _, err := NewGridFromRows(nil, 64); err == nil {
		t.Error("expected error for empty rows")
	}
	if _, err := NewGridFromRows([][]Material{{1, 0}, {1}}, 64); err == nil {
		t.Error("expected error for ragged rows")
	}
	if _, err := NewGridFromRows([][]Material{{1}}, 0); err == nil {
		t.Error("expected error for zero tile size")
	}
}
