package engine

import (
	"fmt"
	"strings"
)

// ASCII renders the board with file letters, rank digits and '.' for
// empty squares, rank 8 at the top.
func ASCII(b *Board) string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for r := 0; r < 8; r++ {
		sb.WriteString(fmt.Sprintf("%d ", 8-r))
		for f := 0; f < 8; f++ {
			sb.WriteByte(b[r][f].Glyph())
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf(" %d\n", 8-r))
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}
