package main

import (
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"treeswift/pkg/utils"
)

const (
	charWidth   = 7
	lineHeight  = 14
	columnGap   = 2 // characters between listing columns
	columnChars = 60
)

var (
	face       = text.NewGoXFace(basicfont.Face7x13)
	background = color.RGBA{0x1e, 0x1e, 0x24, 0xff}
	foreground = color.RGBA{0xd8, 0xd8, 0xd0, 0xff}
	statusFg   = color.RGBA{0x8a, 0xc0, 0xff, 0xff}
)

type Game struct {
	view   *View
	width  int
	height int
	err    string
}

// layout returns how many listing columns and rows fit the window; the
// last row is kept for the status line.
func (g *Game) layout() (cols, rows int) {
	cols = max(1, g.width/((columnChars+columnGap)*charWidth))
	rows = max(1, g.height/lineHeight-1)
	return cols, rows
}

func (g *Game) Update() error {
	cols, rows := g.layout()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.view.NextMode()
	case inpututil.IsKeyJustPressed(ebiten.KeyRight), inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.view.Turn(1, cols, rows)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft), inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.view.Turn(-1, cols, rows)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.err = ""
		if err := g.view.Load(); err != nil {
			g.err = err.Error()
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		delta := 1
		if dy > 0 {
			delta = -1
		}
		g.view.Turn(delta, cols, rows)
	}
	return nil
}

func drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	cols, rows := g.layout()
	for _, cell := range g.view.Page(cols, rows) {
		line := cell.Text
		if len(line) > columnChars {
			line = line[:columnChars-1] + "~"
		}
		px := cell.Col * (columnChars + columnGap) * charWidth
		py := cell.Row * lineHeight
		drawText(screen, line, px, py, foreground)
	}
	status := g.view.Status(cols, rows)
	if g.err != "" {
		status = g.err
	}
	drawText(screen, status, 0, rows*lineHeight, statusFg)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: astview <file.swift>")
	}
	fullPath, _, err := utils.GetPathInfo(os.Args[1])
	if err != nil {
		log.Fatalf("Bad path: %v", err)
	}

	view := &View{Path: fullPath}
	if err := view.Load(); err != nil {
		log.Fatalf("Failed to load source file: %v", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1024, 768)
	ebiten.SetWindowTitle("treeswift AST viewer")

	if err := ebiten.RunGame(&Game{view: view, width: 1024, height: 768}); err != nil {
		log.Fatal(err)
	}
}
