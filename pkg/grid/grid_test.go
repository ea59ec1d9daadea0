package grid

import "testing"

func TestGetGridCoords(t *testing.T) {
	tests := []struct {
		index int
		cols  int
		wantX int
		wantY int
	}{
		{0, 64, 0, 0},
		{63, 64, 63, 0},
		{64, 64, 0, 1},
		{1023, 64, 63, 15},
		{31, 32, 31, 0},
		{32, 32, 0, 1},
	}

	for _, tc := range tests {
		gotX, gotY := GetGridCoords(tc.index, tc.cols)
		if gotX != tc.wantX || gotY != tc.wantY {
			t.Errorf("GetGridCoords(%d, %d) = (%d, %d); want (%d, %d)", tc.index, tc.cols, gotX, gotY, tc.wantX, tc.wantY)
		}
	}
}

func TestGetColumnCoords(t *testing.T) {
	tests := []struct {
		index   int
		rows    int
		wantCol int
		wantRow int
	}{
		{0, 40, 0, 0},
		{39, 40, 0, 39},
		{40, 40, 1, 0},
		{85, 40, 2, 5},
	}

	for _, tc := range tests {
		gotCol, gotRow := GetColumnCoords(tc.index, tc.rows)
		if gotCol != tc.wantCol || gotRow != tc.wantRow {
			t.Errorf("GetColumnCoords(%d, %d) = (%d, %d); want (%d, %d)", tc.index, tc.rows, gotCol, gotRow, tc.wantCol, tc.wantRow)
		}
	}
}

func TestCells(t *testing.T) {
	tests := []struct {
		name      string
		cols      int
		rows      int
		n         int
		wantCells int
		wantPages int
	}{
		{"Empty", 2, 10, 0, 20, 0},
		{"Exact", 2, 10, 20, 20, 1},
		{"Spill", 2, 10, 21, 20, 2},
		{"No Room", 0, 10, 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells, pages := Cells(tt.cols, tt.rows, tt.n)
			if cells != tt.wantCells || pages != tt.wantPages {
				t.Errorf("expected (%d, %d), got (%d, %d)", tt.wantCells, tt.wantPages, cells, pages)
			}
		})
	}
}
