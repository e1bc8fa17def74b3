package timeline

import (
	"fmt"
	"strings"
)

// Entry binds one priority name to its bar color.
type Entry struct {
	Priority string
	Hex      string
}

// Palette maps task priorities to bar background colors and derives a
// readable foreground per entry from background luminance. Entry order is
// preserved for the legend; lookup falls back to the first entry.
type Palette struct {
	entries []Entry
	index   map[string]int
}

// NewPalette validates entry hex colors and builds the lookup table.
func NewPalette(entries []Entry) (*Palette, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyPalette
	}
	p := &Palette{index: map[string]int{}}
	for _, e := range entries {
		e.Priority = strings.ToLower(strings.TrimSpace(e.Priority))
		e.Hex = strings.ToLower(strings.TrimSpace(e.Hex))
		if _, _, _, err := parseHex(e.Hex); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHexColor, e.Hex)
		}
		if _, ok := p.index[e.Priority]; ok {
			continue
		}
		p.index[e.Priority] = len(p.entries)
		p.entries = append(p.entries, e)
	}
	return p, nil
}

// Entries returns the palette in declaration order.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Background returns the bar color for a priority, falling back to the
// first entry for unknown names.
func (p *Palette) Background(priority string) string {
	if i, ok := p.index[strings.ToLower(strings.TrimSpace(priority))]; ok {
		return p.entries[i].Hex
	}
	return p.entries[0].Hex
}

// Foreground picks dark or light label text against the priority's bar
// color so the ticket stays readable on any palette.
func (p *Palette) Foreground(priority string) string {
	return ContrastColor(p.Background(priority))
}

const (
	darkText  = "#1d2021"
	lightText = "#f8f8f2"
)

// ContrastColor returns a dark or light text color for the given hex
// background, switching at half of full luminance.
func ContrastColor(hex string) string {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return lightText
	}
	if Luminance(r, g, b) > 0.5*255 {
		return darkText
	}
	return lightText
}

// Luminance computes perceived brightness of an 8-bit RGB color using the
// Rec. 601 weights.
func Luminance(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

func parseHex(hex string) (r, g, b uint8, err error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, ErrInvalidHexColor
	}
	var rv, gv, bv int
	if _, err := fmt.Sscanf(strings.ToLower(s), "%02x%02x%02x", &rv, &gv, &bv); err != nil {
		return 0, 0, 0, ErrInvalidHexColor
	}
	return uint8(rv), uint8(gv), uint8(bv), nil
}
