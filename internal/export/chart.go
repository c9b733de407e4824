package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/rotisserie/eris"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Fixed service colors and the province palette, mirroring the dashboard
// theme defaults.
var (
	ServiceColors = map[string]string{
		"Data":      "60a5fa",
		"Broadband": "f59e0b",
		"Voice":     "f472b6",
	}

	ProvincePalette = []string{
		"60a5fa", "f59e0b", "f472b6", "a78bfa", "38bdf8", "fb7185",
		"c084fc", "fca5a5", "93c5fd", "e879f9", "eab308", "fda4af",
		"818cf8", "fbbf24",
	}
)

// ProvinceColor assigns palette colors to provinces by first-seen index.
func ProvinceColor(index int) string {
	return ProvincePalette[index%len(ProvincePalette)]
}

// SeverityColor maps a 0..1 load ratio onto the hotspot bar gradient
// (cyan toward red as the ratio grows); equivalent of
// hsl(190-190*ratio, 90%, 55%).
func SeverityColor(ratio float64) color.RGBA {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	h := 190 - math.Floor(190*ratio)
	return hslToRGB(h, 0.90, 0.55)
}

func hslToRGB(h, s, l float64) color.RGBA {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := l - c/2
	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

// PieSlice is one labeled pie value.
type PieSlice struct {
	Label string
	Value float64
	Color string // hex without '#'
}

// ChartRenderer is the injected rendering port: the report builder's pure
// computation stays decoupled from any particular chart library.
type ChartRenderer interface {
	RenderPie(title string, slices []PieSlice, width, height int) (image.Image, error)
}

// GoChartRenderer renders pies with go-chart.
type GoChartRenderer struct{}

// RenderPie draws a pie chart for the non-zero slices. An all-zero input
// yields a blank image rather than an error so an empty report still
// rasterizes.
func (GoChartRenderer) RenderPie(title string, slices []PieSlice, width, height int) (image.Image, error) {
	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: s.Value,
			Label: s.Label,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(s.Color),
				StrokeColor: drawing.ColorFromHex("0b1220"),
				StrokeWidth: 2,
				FontColor:   drawing.ColorWhite,
			},
		})
	}
	if len(values) == 0 {
		return image.NewRGBA(image.Rect(0, 0, width, height)), nil
	}

	pie := chart.PieChart{
		Title:      title,
		Width:      width,
		Height:     height,
		Values:     values,
		Background: chart.Style{FillColor: drawing.ColorFromHex("0b1220")},
		Canvas:     chart.Style{FillColor: drawing.ColorFromHex("0b1220")},
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, eris.Wrap(err, "export: render pie")
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, eris.Wrap(err, "export: decode pie png")
	}
	return img, nil
}
