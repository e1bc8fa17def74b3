// Package main provides a small lab for previewing priority bar palettes and
// their contrast foregrounds in the current terminal.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/tavla/spann/internal/config"
	"github.com/tavla/spann/internal/timeline"
)

func main() {
	cfg := config.Default("")
	if len(os.Args) > 1 {
		loaded, err := config.Load(os.Args[1], cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	entries := make([]timeline.Entry, 0, len(cfg.Palette))
	for _, e := range cfg.Palette {
		entries = append(entries, timeline.Entry{Priority: e.Priority, Hex: e.Color})
	}
	palette, err := timeline.NewPalette(entries)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fmt.Println("=== PRIORITY BAR PALETTE ===")
	displayPalette(palette)

	fmt.Println("\n=== CONTRAST SWEEP ===")
	displayContrastSweep()
}

// displayPalette renders one table row per priority with a bar sample.
func displayPalette(palette *timeline.Palette) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
		Headers("Priority", "Hex", "Foreground", "Sample").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == 0 {
				return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
			}
			return lipgloss.NewStyle()
		})

	for _, entry := range palette.Entries() {
		fg := timeline.ContrastColor(entry.Hex)
		sample := lipgloss.NewStyle().
			Background(lipgloss.Color(entry.Hex)).
			Foreground(lipgloss.Color(fg)).
			Padding(0, 1).
			Render(" " + entry.Priority + " task bar ")
		t.Row(entry.Priority, entry.Hex, fg, sample)
	}
	fmt.Println(t.Render())
}

// displayContrastSweep shows where the foreground flips across a gray ramp.
func displayContrastSweep() {
	var b strings.Builder
	for i := 0; i <= 15; i++ {
		v := i * 17
		hex := fmt.Sprintf("#%02x%02x%02x", v, v, v)
		style := lipgloss.NewStyle().
			Background(lipgloss.Color(hex)).
			Foreground(lipgloss.Color(timeline.ContrastColor(hex))).
			Width(7).
			Align(lipgloss.Center)
		b.WriteString(style.Render(fmt.Sprintf("%3d", v)))
		if (i+1)%8 == 0 {
			b.WriteString("\n")
		}
	}
	fmt.Print(b.String())
}
