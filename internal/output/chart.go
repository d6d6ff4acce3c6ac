package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DataSeries represents a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws one or more series as a text line chart
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels
	Width      int
	Height     int
	ShowLegend bool
	XAxisLabel string
	painter    painter
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// Plain disables colour.
func (c *ASCIIChart) Plain(plain bool) *ASCIIChart {
	c.painter = painter{plain: plain}
	return c
}

// Render returns the chart as text
func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 {
		return c.painter.paint(mutedStyle, "No data to display") + "\n"
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(c.painter.paint(titleStyle, c.Title))
		content.WriteString("\n\n")
	}

	minVal, maxVal := c.minMax()
	content.WriteString(c.renderGrid(minVal, maxVal))

	if c.XAxisLabel != "" {
		content.WriteString(c.painter.paint(mutedStyle, c.XAxisLabel))
		content.WriteString("\n")
	}
	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString(c.renderLegend())
		content.WriteString("\n")
	}
	return content.String()
}

// minMax finds the range across all series with 10% padding
func (c *ASCIIChart) minMax() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if hi == lo {
		// flat series: give the axis some height
		pad := math.Max(math.Abs(hi)*0.1, 1)
		return lo - pad, hi + pad
	}
	padding := (hi - lo) * 0.1
	return lo - padding, hi + padding
}

func (c *ASCIIChart) renderGrid(minVal, maxVal float64) string {
	const yAxisWidth = 12
	chartWidth := c.Width - yAxisWidth
	if chartWidth < 2 {
		chartWidth = 2
	}
	height := c.Height
	if height < 2 {
		height = 2
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", chartWidth))
	}

	scaleY := func(v float64) int {
		return height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
	}
	scaleX := func(i, n int) int {
		if n <= 1 {
			return 0
		}
		return int(float64(i) / float64(n-1) * float64(chartWidth-1))
	}

	for idx, s := range c.Series {
		ch := seriesChar(idx)
		for i, v := range s.Points {
			x, y := scaleX(i, len(s.Points)), scaleY(v)
			if i > 0 {
				drawLine(grid, scaleX(i-1, len(s.Points)), scaleY(s.Points[i-1]), x, y)
			}
			if y >= 0 && y < height && x >= 0 && x < chartWidth {
				grid[y][x] = ch
			}
		}
	}

	var out strings.Builder
	axis := lipgloss.NewStyle().Foreground(colorMuted)
	for i, row := range grid {
		yValue := maxVal - float64(i)/float64(height-1)*(maxVal-minVal)
		label := fmt.Sprintf("%*s", yAxisWidth, formatChartValue(yValue))
		out.WriteString(c.painter.paint(axis, label))
		out.WriteString(" │ ")
		out.WriteString(string(row))
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", chartWidth))
	out.WriteString("\n")

	if len(c.Labels) > 0 {
		out.WriteString(c.renderXAxisLabels(yAxisWidth, chartWidth))
		out.WriteString("\n")
	}
	return out.String()
}

// renderXAxisLabels places the first and last labels and up to three between.
func (c *ASCIIChart) renderXAxisLabels(yAxisWidth, chartWidth int) string {
	line := []rune(strings.Repeat(" ", chartWidth+1))
	const maxLabels = 5
	n := len(c.Labels)
	step := 1
	if n > maxLabels {
		step = (n - 1) / (maxLabels - 1)
	}
	next := 0
	for i := 0; i < n; i += step {
		pos := 0
		if n > 1 {
			pos = int(float64(i) / float64(n-1) * float64(chartWidth-1))
		}
		if pos < next {
			continue
		}
		label := []rune(c.Labels[i])
		if pos+len(label) > len(line) {
			pos = len(line) - len(label)
			if pos < next {
				continue
			}
		}
		copy(line[pos:], label)
		next = pos + len(label) + 1
	}
	return strings.Repeat(" ", yAxisWidth+3) + strings.TrimRight(string(line), " ")
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		symbol := c.painter.paint(lipgloss.NewStyle().Foreground(s.Color), string(seriesChar(i)))
		items = append(items, fmt.Sprintf("%s %s", symbol, s.Name))
	}
	return c.painter.paint(labelStyle, "Legend: ") + strings.Join(items, " • ")
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine connects two points with dots using Bresenham's algorithm
func drawLine(grid [][]rune, x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	x, y := x0, y0
	for {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			grid[y][x] = '·'
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// formatChartValue formats a value for display on the Y-axis
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1000000:
		return fmt.Sprintf("S$%.1fM", value/1000000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("S$%.0fK", value/1000)
	}
	return fmt.Sprintf("S$%.0f", value)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
