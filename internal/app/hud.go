package app

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inputpulse/internal/input"
	"github.com/dshills/inputpulse/internal/input/hittest"
)

// Trigger boxes are sized in screen cells; the hit-test plane shares
// the terminal's cell coordinates.
const (
	triggerBoxWidth  = 14.0
	triggerBoxHeight = 3.0
)

var (
	styleText   = tcell.StyleDefault
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleActive = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleHover  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// hud paints channel state and trigger boxes each tick.
type hud struct {
	screen tcell.Screen
}

func newHUD(screen tcell.Screen) *hud {
	return &hud{screen: screen}
}

func (h *hud) render(tick int64, mgr *input.Manager, plane *hittest.Plane) {
	h.screen.Clear()

	snap := mgr.Metrics()
	h.text(0, 0, styleText, fmt.Sprintf(
		"inputpulse  tick %d  transitions %d  dropped touches %d  esc quits",
		tick, snap.TransitionsTotal, snap.DroppedTouches))

	hovered, _ := plane.Hovered()
	for _, reg := range plane.Regions() {
		h.box(reg, hovered != nil && hovered == reg.Target)
	}

	y := int(2 + triggerBoxHeight + 1)
	for _, name := range mgr.Names() {
		ch, ok := mgr.Channel(name)
		if !ok {
			continue
		}
		style, marker := styleDim, " "
		if ch.IsActive() {
			style, marker = styleActive, "*"
		}
		h.text(2, y, style, fmt.Sprintf("%s %-12s %s %+.2f", marker, name, valueBar(ch.Value()), ch.Value()))
		y++
	}

	h.screen.Show()
}

func (h *hud) text(x, y int, style tcell.Style, s string) {
	// Range indexes are byte offsets, not columns.
	col := x
	for _, r := range s {
		h.screen.SetContent(col, y, r, nil, style)
		col++
	}
}

// box draws a trigger region's border and centered label.
func (h *hud) box(reg hittest.Region, hovered bool) {
	style := styleDim
	if hovered {
		style = styleHover
	}

	minX, minY := int(reg.Rect.MinX), int(reg.Rect.MinY)
	maxX, maxY := int(reg.Rect.MaxX)-1, int(reg.Rect.MaxY)-1

	for x := minX + 1; x < maxX; x++ {
		h.screen.SetContent(x, minY, '─', nil, style)
		h.screen.SetContent(x, maxY, '─', nil, style)
	}
	for y := minY + 1; y < maxY; y++ {
		h.screen.SetContent(minX, y, '│', nil, style)
		h.screen.SetContent(maxX, y, '│', nil, style)
	}
	h.screen.SetContent(minX, minY, '┌', nil, style)
	h.screen.SetContent(maxX, minY, '┐', nil, style)
	h.screen.SetContent(minX, maxY, '└', nil, style)
	h.screen.SetContent(maxX, maxY, '┘', nil, style)

	label := fmt.Sprint(reg.Target)
	inner := maxX - minX - 1
	if len(label) > inner {
		label = label[:inner]
	}
	x := minX + 1 + (inner-len(label))/2
	h.text(x, minY+1, style, label)
}

// valueBar renders v in [-1, 1] as a fixed-width bar around a center
// pivot.
func valueBar(v float64) string {
	const half = 10
	n := int(math.Round(math.Abs(v) * half))
	if n > half {
		n = half
	}

	bar := make([]rune, 2*half+3)
	for i := range bar {
		bar[i] = '·'
	}
	bar[0], bar[len(bar)-1] = '[', ']'
	bar[half+1] = '|'
	if v < 0 {
		for i := 0; i < n; i++ {
			bar[half-i] = '='
		}
	} else {
		for i := 0; i < n; i++ {
			bar[half+2+i] = '='
		}
	}
	return string(bar)
}
