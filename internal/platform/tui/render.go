// Package tui renders boards, shapes and hands for the terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// fillStyles maps core.Fill to lipgloss styles.
var fillStyles = map[core.Fill]lipgloss.Style{
	core.FillNone:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.FillRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.FillOrange: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.FillYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.FillGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.FillCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.FillBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.FillPurple: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// cellText returns the two-column glyph for a cell.
func cellText(f core.Fill, styled bool) string {
	if !styled {
		return string(f.Char()) + " "
	}
	if f == core.FillNone {
		return "· "
	}
	return "██"
}

// renderGrid draws a rows x cols grid of fills. Adjacent cells with the same
// fill are grouped to minimize ANSI escape sequences.
func renderGrid(rows, cols int, at func(col, row int) core.Fill, styled bool) string {
	lines := make([]string, rows)
	for row := 0; row < rows; row++ {
		var sb strings.Builder
		col := 0
		for col < cols {
			start := at(col, row)

			var run strings.Builder
			for col < cols && at(col, row) == start {
				run.WriteString(cellText(start, styled))
				col++
			}

			if !styled {
				sb.WriteString(run.String())
				continue
			}
			style, ok := fillStyles[start]
			if !ok {
				style = fillStyles[core.DefaultFill]
			}
			sb.WriteString(style.Render(run.String()))
		}
		lines[row] = sb.String()
		if !styled {
			lines[row] = strings.TrimRight(lines[row], " ")
		}
	}
	return strings.Join(lines, "\n")
}

// RenderBoard converts a board to a string for display.
func RenderBoard(b *core.Board, styled bool) string {
	m := b.Matrix()
	grid := renderGrid(core.BoardSize, core.BoardSize, func(col, row int) core.Fill {
		return m[row][col]
	}, styled)
	if !styled {
		return grid
	}
	return panelStyle.Render(grid)
}

// RenderShape draws a shape in its own bounding box.
func RenderShape(s *core.Shape, styled bool) string {
	filled := make(map[core.Cell]bool, s.Size())
	for _, c := range s.Cells() {
		filled[c] = true
	}
	return renderGrid(s.Height(), s.Width(), func(col, row int) core.Fill {
		if filled[core.C(col, row)] {
			return s.Fill
		}
		return core.FillNone
	}, styled)
}

// RenderHand draws the active set side by side. Used slots are shown dimmed.
func RenderHand(slots []core.Slot, styled bool) string {
	if len(slots) == 0 {
		return ""
	}
	parts := make([]string, 0, len(slots))
	for i, sl := range slots {
		label := fmt.Sprintf("%d %s", i, sl.Shape.Name)
		body := RenderShape(sl.Shape, styled)
		if sl.Used {
			label += " (used)"
			if styled {
				body = dimStyle.Render(RenderShape(sl.Shape, false))
			}
		}
		if !styled {
			parts = append(parts, label+"\n"+body)
			continue
		}
		parts = append(parts, panelStyle.Render(titleStyle.Render(label)+"\n"+body))
	}
	if !styled {
		return strings.Join(parts, "\n\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Panel wraps body in a titled border.
func Panel(title, body string) string {
	return panelStyle.Render(titleStyle.Render(title) + "\n" + body)
}
