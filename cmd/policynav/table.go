package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const maxCellWidth = 60

// printTable renders rows as an aligned text table. Column widths are
// display widths, so wide runes line up.
func printTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := runewidth.StringWidth(truncateCell(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	printRow(headers, widths)
	separators := make([]string, len(headers))
	for i, w := range widths {
		separators[i] = strings.Repeat("-", w)
	}
	printRow(separators, widths)
	for _, row := range rows {
		printRow(row, widths)
	}
}

func printRow(cells []string, widths []int) {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = truncateCell(cells[i])
		}
		parts[i] = runewidth.FillRight(cell, widths[i])
	}
	fmt.Println(strings.TrimRight(strings.Join(parts, "  "), " "))
}

func truncateCell(cell string) string {
	return runewidth.Truncate(cell, maxCellWidth, "…")
}
