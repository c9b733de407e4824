package export

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvinceColorWrapsPalette(t *testing.T) {
	assert.Equal(t, ProvincePalette[0], ProvinceColor(0))
	assert.Equal(t, ProvincePalette[1], ProvinceColor(1))
	assert.Equal(t, ProvincePalette[0], ProvinceColor(len(ProvincePalette)))
}

func TestSeverityColor(t *testing.T) {
	// Ratio 0 is hue 190 (cyan), ratio 1 is hue 0 (red).
	cold := SeverityColor(0)
	hot := SeverityColor(1)
	assert.Greater(t, cold.B, cold.R)
	assert.Greater(t, hot.R, hot.B)
	assert.Equal(t, uint8(255), cold.A)

	// Out-of-range ratios clamp instead of wrapping the hue.
	assert.Equal(t, cold, SeverityColor(-2))
	assert.Equal(t, hot, SeverityColor(3.5))
}

func TestSeverityColorMonotoneHue(t *testing.T) {
	// Full-saturation HSL at fixed lightness: red channel never falls as
	// the ratio grows across the cyan-to-red sweep's red-dominant tail.
	prev := SeverityColor(0.5)
	for _, ratio := range []float64{0.7, 0.9, 1.0} {
		cur := SeverityColor(ratio)
		assert.GreaterOrEqual(t, cur.R, prev.R)
		prev = cur
	}
}

func TestHSLToRGBKnownValues(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, hslToRGB(0, 1, 0.5))
	assert.Equal(t, color.RGBA{R: 0, G: 255, B: 0, A: 255}, hslToRGB(120, 1, 0.5))
	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 255, A: 255}, hslToRGB(240, 1, 0.5))
}

func TestRenderPieSkipsZeroSlices(t *testing.T) {
	r := GoChartRenderer{}
	img, err := r.RenderPie("Services", []PieSlice{
		{Label: "Data", Value: 3, Color: "60a5fa"},
		{Label: "Voice", Value: 0, Color: "f472b6"},
	}, 200, 200)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestRenderPieAllZeroYieldsBlankImage(t *testing.T) {
	r := GoChartRenderer{}
	img, err := r.RenderPie("Services", []PieSlice{
		{Label: "Data", Value: 0, Color: "60a5fa"},
	}, 64, 48)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}
