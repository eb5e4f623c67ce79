package debugui

import (
	"strings"

	"github.com/plus3/serpent/snake"
)

// Cell glyphs for the text rendering of the field.
const (
	glyphEmpty = '.'
	glyphHead  = 'O'
	glyphBody  = 'o'
	glyphFruit = '*'
)

// FieldRows renders the field as fixed-width text rows, top row first.
// The head wins a cell over body segments, body segments win over the
// fruit. Out-of-bounds positions are simply not drawn.
func FieldRows(sim *snake.Simulation) []string {
	cfg := sim.Config()

	type cell struct{ cx, cy int }
	toCell := func(p snake.Point) cell {
		return cell{cx: p.X / cfg.CellSize, cy: p.Y / cfg.CellSize}
	}

	glyphs := make(map[cell]rune)
	glyphs[toCell(sim.FruitPosition())] = glyphFruit
	for _, seg := range sim.Body() {
		glyphs[toCell(seg)] = glyphBody
	}
	glyphs[toCell(sim.HeadPosition())] = glyphHead

	rows := make([]string, 0, 2*cfg.HalfHeight+1)
	var b strings.Builder
	for cy := cfg.HalfHeight; cy >= -cfg.HalfHeight; cy-- {
		b.Reset()
		for cx := -cfg.HalfWidth; cx <= cfg.HalfWidth; cx++ {
			g, ok := glyphs[cell{cx: cx, cy: cy}]
			if !ok {
				g = glyphEmpty
			}
			b.WriteRune(g)
		}
		rows = append(rows, b.String())
	}
	return rows
}
