package ui

import "strings"

// subBlocks are the eighth-block glyphs used to draw partial cells, from
// empty to full.
var subBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// renderTrace draws a column strip of normalized values in [0, 1] as height
// rows of sub-block characters, bottom-aligned. The cursor column is left
// blank so the sweeping eraser gap is visible; pass -1 to draw without one.
func renderTrace(columns []float64, cursor, height int) []string {
	if height < 1 {
		height = 1
	}
	rows := make([]string, height)
	if len(columns) == 0 {
		for i := range rows {
			rows[i] = ""
		}
		return rows
	}

	builders := make([]strings.Builder, height)
	for col, v := range columns {
		if col == cursor {
			for i := range builders {
				builders[i].WriteRune(' ')
			}
			continue
		}
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		// Total filled eighths across the stacked rows.
		eighths := int(v*float64(height*8) + 0.5)
		for row := 0; row < height; row++ {
			// Row 0 is the top of the panel.
			fill := eighths - (height-1-row)*8
			if fill < 0 {
				fill = 0
			}
			if fill > 8 {
				fill = 8
			}
			builders[row].WriteRune(subBlocks[fill])
		}
	}
	for i := range rows {
		rows[i] = builders[i].String()
	}
	return rows
}
