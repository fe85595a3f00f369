package engine

import "fmt"

// Square is a board coordinate. Row 0 is rank 8 (black's back rank),
// row 7 is rank 1; column 0 is file 'a'.
type Square struct {
	Row int
	Col int
}

// InBounds reports whether both coordinates lie within [0,7].
func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row <= 7 && s.Col >= 0 && s.Col <= 7
}

// Algebraic returns the square in file-letter + rank-digit form ("e4").
func (s Square) Algebraic() string {
	return string([]byte{byte('a' + s.Col), byte('8' - s.Row)})
}

// ParseSquare is the exact inverse of Algebraic.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return Square{}, fmt.Errorf("invalid square %q: expected 2 characters", text)
	}
	if text[0] < 'a' || text[0] > 'h' || text[1] < '1' || text[1] > '8' {
		return Square{}, fmt.Errorf("invalid square %q", text)
	}
	return Square{Row: int('8' - text[1]), Col: int(text[0] - 'a')}, nil
}
