package theme

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/minesofdoom/internal/game"
)

// SymbolDef pairs a display character with a hex color.
type SymbolDef struct {
	Glyph string `json:"glyph"` // Single character (e.g., "X")
	Color string `json:"color"` // Hex color code (e.g., "#808080")
}

// Rune returns the glyph as a rune, or '?' when unset.
func (s SymbolDef) Rune() rune {
	if len(s.Glyph) == 0 {
		return '?'
	}
	return rune(s.Glyph[0])
}

// Theme defines how each kind of cell is drawn.
type Theme struct {
	Hidden SymbolDef `json:"hidden"`
	Hazard SymbolDef `json:"hazard"`
	Empty  SymbolDef `json:"empty"`
	Cursor string    `json:"cursor"` // Background color of the selected cell
	Digits []string  `json:"digits"` // Colors for counts 1 through 8
}

// LoadTheme loads the embedded theme.json.
func LoadTheme() (*Theme, error) {
	t, err := Load[Theme]("theme.json")
	if err != nil {
		return nil, err
	}
	if len(t.Digits) != 8 {
		return nil, errors.New("theme.json must define 8 digit colors")
	}
	return &t, nil
}

// MustLoadTheme loads the embedded theme, panicking on error.
func MustLoadTheme() *Theme {
	t, err := LoadTheme()
	if err != nil {
		panic(err)
	}
	return t
}

// Glyph returns the character drawn for a cell.
func (t *Theme) Glyph(view game.CellView) rune {
	switch {
	case !view.Revealed:
		return t.Hidden.Rune()
	case view.Hazard:
		return t.Hazard.Rune()
	case view.Count == 0:
		return t.Empty.Rune()
	default:
		return rune('0' + view.Count)
	}
}

// DigitColor returns the color for a neighbor count in 1..8.
func (t *Theme) DigitColor(n int) tcell.Color {
	if n < 1 || n > len(t.Digits) {
		return tcell.ColorWhite
	}
	return colorOr(t.Digits[n-1], tcell.ColorWhite)
}

// Style returns the foreground style for a cell.
func (t *Theme) Style(view game.CellView) tcell.Style {
	base := tcell.StyleDefault
	switch {
	case !view.Revealed:
		return base.Foreground(colorOr(t.Hidden.Color, tcell.ColorGray))
	case view.Hazard:
		return base.Foreground(colorOr(t.Hazard.Color, tcell.ColorRed)).Bold(true)
	case view.Count == 0:
		return base.Foreground(colorOr(t.Empty.Color, tcell.ColorDarkGray))
	default:
		return base.Foreground(t.DigitColor(view.Count)).Bold(true)
	}
}

// CursorColor returns the background color of the selected cell.
func (t *Theme) CursorColor() tcell.Color {
	return colorOr(t.Cursor, tcell.ColorNavy)
}
