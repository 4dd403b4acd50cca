package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = min(max(pct, 0), 1)
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// BarLength scales value against peak so that peak fills width. Values are
// truncated, as in a text histogram.
func BarLength(value, peak, width int) int {
	if peak <= 0 || value <= 0 {
		return 0
	}
	return min(value*width/peak, width)
}

// CountdownBar draws elapsed time with a bubbles progress bar. Pomodoros
// fade from orange to green, breaks from green to blue.
type CountdownBar struct {
	work progress.Model
	rest progress.Model
}

func NewCountdownBar(width int) *CountdownBar {
	return &CountdownBar{
		work: progress.New(
			progress.WithScaledGradient(string(ColorHeader), string(ColorGreen)),
			progress.WithWidth(width),
			progress.WithoutPercentage(),
		),
		rest: progress.New(
			progress.WithScaledGradient(string(ColorGreen), string(ColorBlue)),
			progress.WithWidth(width),
			progress.WithoutPercentage(),
		),
	}
}

// View renders the bar at fraction elapsed.
func (c *CountdownBar) View(elapsed float64, isBreak bool) string {
	if isBreak {
		return c.rest.ViewAs(elapsed)
	}
	return c.work.ViewAs(elapsed)
}
