package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"treeswift/pkg/ast"
	"treeswift/pkg/frontend"
	"treeswift/pkg/grid"
	"treeswift/pkg/lexer"
	"treeswift/pkg/source"
)

// Mode selects the listing shown in the window.
type Mode int

const (
	ModeAST Mode = iota
	ModeTokens
	ModeScopes
	ModeDiagnostics
	modeCount
)

var modeNames = [...]string{
	ModeAST:         "ast",
	ModeTokens:      "tokens",
	ModeScopes:      "scopes",
	ModeDiagnostics: "diagnostics",
}

func (m Mode) String() string { return modeNames[m] }

// View holds the listings of one file and the position of the reader in
// the current one.
type View struct {
	Path     string
	Mode     Mode
	listings [modeCount][]string
	page     int
}

// Load parses path and rebuilds every listing.
func (v *View) Load() error {
	data, err := os.ReadFile(v.Path)
	if err != nil {
		return err
	}
	return v.LoadSource(string(data))
}

// LoadSource rebuilds the listings from src.
func (v *View) LoadSource(src string) error {
	var tokens []string
	for _, t := range lexer.NewStream(source.FromString(src)).All() {
		tokens = append(tokens, fmt.Sprintf("%s %s", t.Pos, t))
	}

	res, err := frontend.ParseSources(context.Background(), frontend.DefaultConfig(), []frontend.Source{{Name: v.Path, Text: src}})
	if err != nil {
		return err
	}
	var tree, diags bytes.Buffer
	if err := ast.Dump(&tree, res.Module); err != nil {
		return err
	}
	if err := res.Ledger.Report(&diags); err != nil {
		return err
	}

	v.listings[ModeAST] = lines(tree.String())
	v.listings[ModeTokens] = tokens
	v.listings[ModeScopes] = lines(res.Module.Scope.String())
	v.listings[ModeDiagnostics] = lines(diags.String())
	if len(v.listings[ModeDiagnostics]) == 0 {
		v.listings[ModeDiagnostics] = []string{"no diagnostics"}
	}
	v.page = 0
	return nil
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Lines is the current listing.
func (v *View) Lines() []string { return v.listings[v.Mode] }

// NextMode cycles through the listings.
func (v *View) NextMode() {
	v.Mode = (v.Mode + 1) % modeCount
	v.page = 0
}

// Turn moves by delta pages within a layout of cols by rows.
func (v *View) Turn(delta, cols, rows int) {
	_, pages := grid.Cells(cols, rows, len(v.Lines()))
	v.page = max(0, min(v.page+delta, pages-1))
}

// Cell is one listing line placed on screen.
type Cell struct {
	Col, Row int
	Text     string
}

// Page lays the current page out in cols side by side columns of rows
// lines each.
func (v *View) Page(cols, rows int) []Cell {
	perPage, _ := grid.Cells(cols, rows, len(v.Lines()))
	all := v.Lines()
	start := v.page * perPage
	if start >= len(all) {
		return nil
	}
	end := min(start+perPage, len(all))
	out := make([]Cell, 0, end-start)
	for i, text := range all[start:end] {
		col, row := grid.GetColumnCoords(i, rows)
		out = append(out, Cell{Col: col, Row: row, Text: text})
	}
	return out
}

// Status is the footer line.
func (v *View) Status(cols, rows int) string {
	_, pages := grid.Cells(cols, rows, len(v.Lines()))
	return fmt.Sprintf("%s  [%s]  page %d/%d  tab: listing  arrows: page  r: reload", v.Path, v.Mode, v.page+1, max(pages, 1))
}
