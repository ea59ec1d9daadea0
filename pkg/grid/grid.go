// Package grid maps linear cell indices onto a two-dimensional layout.
package grid

// GetGridCoords places index in a row-major grid cols cells wide.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// GetColumnCoords places index in a column-major grid rows cells tall, the
// way a long listing is split into side by side columns.
func GetColumnCoords(index, rows int) (col, row int) {
	row, col = GetGridCoords(index, rows)
	return col, row
}

// Cells returns how many cells a grid of cols by rows holds, and how many
// pages n items need at that size.
func Cells(cols, rows, n int) (perPage, pages int) {
	perPage = cols * rows
	if perPage <= 0 {
		return 0, 0
	}
	return perPage, (n + perPage - 1) / perPage
}
