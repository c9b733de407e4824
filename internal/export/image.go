package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/rotisserie/eris"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/nt-noc/comparedash/internal/engine"
	"github.com/nt-noc/comparedash/internal/model"
)

// Report canvas geometry.
const (
	canvasWidth  = 1200
	canvasHeight = 900
	pieSize      = 420
	marginX      = 40
	hotBarWidth  = 560
	hotBarHeight = 14
)

var (
	canvasBG   = color.RGBA{R: 0x0b, G: 0x12, B: 0x20, A: 255}
	textColor  = color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 255}
	mutedColor = color.RGBA{R: 0x9a, G: 0xa6, B: 0xb2, A: 255}
)

// RenderReportPNG rasterizes the report view — KPI lines, the two pies,
// and the hotspot ranking — and encodes it as PNG. The chart renderer is
// injected so rasterization is testable without a chart backend.
func RenderReportPNG(w io.Writer, rep engine.ReportModel, renderer ChartRenderer) error {
	canvas := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(canvasBG), image.Point{}, draw.Src)

	drawText(canvas, marginX, 36, textColor, "Impact Report")
	drawText(canvas, marginX, 64, textColor, fmt.Sprintf(
		"Customers: %d   Circuits: %d   Provinces: %d",
		rep.Customers, rep.Circuits, rep.Provinces,
	))
	drawText(canvas, marginX, 88, textColor, fmt.Sprintf(
		"Data: %d   Broadband: %d   Voice: %d",
		rep.Services.Data, rep.Services.Broadband, rep.Services.Voice,
	))
	drawText(canvas, marginX, 112, mutedColor, rep.Narrative())

	svcPie, err := renderer.RenderPie("Service Breakdown", []PieSlice{
		{Label: "Data", Value: float64(rep.Services.Data), Color: ServiceColors["Data"]},
		{Label: "Broadband", Value: float64(rep.Services.Broadband), Color: ServiceColors["Broadband"]},
		{Label: "Voice", Value: float64(rep.Services.Voice), Color: ServiceColors["Voice"]},
	}, pieSize, pieSize)
	if err != nil {
		return err
	}

	// Province pie shows the top 8, matching the dashboard chart.
	const provincePieTop = 8
	top := rep.ProvinceCounts
	if len(top) > provincePieTop {
		top = top[:provincePieTop]
	}
	provSlices := make([]PieSlice, 0, len(top))
	for i, pc := range top {
		provSlices = append(provSlices, PieSlice{
			Label: pc.Province,
			Value: float64(pc.Count),
			Color: ProvinceColor(i),
		})
	}
	provPie, err := renderer.RenderPie("Provinces", provSlices, pieSize, pieSize)
	if err != nil {
		return err
	}

	pieTop := 140
	draw.Draw(canvas, image.Rect(marginX, pieTop, marginX+pieSize, pieTop+pieSize), svcPie, svcPie.Bounds().Min, draw.Over)
	provX := canvasWidth - marginX - pieSize
	draw.Draw(canvas, image.Rect(provX, pieTop, provX+pieSize, pieTop+pieSize), provPie, provPie.Bounds().Min, draw.Over)

	drawHotspots(canvas, marginX, pieTop+pieSize+48, rep.Hotspots)

	if err := png.Encode(w, canvas); err != nil {
		return eris.Wrap(err, "export: encode report png")
	}
	return nil
}

func drawHotspots(canvas *image.RGBA, x, y int, hotspots []engine.Hotspot) {
	drawText(canvas, x, y, textColor, "Hotspots (Top 5)")
	y += 28

	if len(hotspots) == 0 {
		drawText(canvas, x, y, mutedColor, model.Placeholder)
		return
	}

	maxTotal := hotspots[0].Total
	for _, h := range hotspots {
		if h.Total > maxTotal {
			maxTotal = h.Total
		}
	}
	if maxTotal == 0 {
		maxTotal = 1
	}

	for _, h := range hotspots {
		line := fmt.Sprintf("%s (%d) • Data (%d) | Broadband (%d) | Voice (%d)",
			h.Province, h.Total, h.Data, h.Broadband, h.Voice)
		drawText(canvas, x, y, textColor, line)

		ratio := float64(h.Total) / float64(maxTotal)
		barW := int(ratio * hotBarWidth)
		if barW < 1 {
			barW = 1
		}
		bar := image.Rect(x, y+8, x+barW, y+8+hotBarHeight)
		draw.Draw(canvas, bar, image.NewUniform(SeverityColor(ratio)), image.Point{}, draw.Src)

		y += 48
	}
}

func drawText(dst *image.RGBA, x, y int, c color.Color, s string) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
