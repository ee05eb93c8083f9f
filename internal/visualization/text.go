package visualization

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nvandessel/walkheat/internal/heatmap"
)

// shades runs from unvisited to the most visited cell.
const shades = " .:-=+*#%@"

// RenderText writes the heatmap as a character grid, largest y first, with
// lattice coordinates along both axes and the count scale underneath.
func RenderText(w io.Writer, hm *heatmap.Heatmap, size int) error {
	if size < 0 {
		size = 0
	}
	grid := hm.Grid(size)
	maxCount := hm.MaxCount()
	labelWidth := max(len(fmt.Sprint(size)), len(fmt.Sprint(-size)))

	bw := bufio.NewWriter(w)
	for row := range grid {
		y := size - row
		fmt.Fprintf(bw, "%*d |", labelWidth, y)
		for _, n := range grid[row] {
			fmt.Fprintf(bw, " %c ", shade(n, maxCount))
		}
		bw.WriteString("\n")
	}

	fmt.Fprintf(bw, "%*s +%s\n", labelWidth, "", strings.Repeat("---", len(grid)))
	fmt.Fprintf(bw, "%*s  ", labelWidth, "")
	for x := -size; x <= size; x++ {
		fmt.Fprintf(bw, "%3d", x)
	}
	bw.WriteString("\n")
	fmt.Fprintf(bw, "scale: %q = 0 .. %q = %d visits\n", shades[0], shades[len(shades)-1], maxCount)

	return bw.Flush()
}

func shade(n, maxCount int) byte {
	if n <= 0 || maxCount <= 0 {
		return shades[0]
	}
	idx := 1 + n*(len(shades)-2)/maxCount
	return shades[min(idx, len(shades)-1)]
}
