package export

import (
	"bytes"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/rotisserie/eris"
)

// pdfMargin is the fixed page margin in points.
const pdfMargin = 28

// WriteReportPDF wraps an already-rendered report PNG in a single-page A4
// landscape PDF, scaled to fit inside the margins and centered.
func WriteReportPDF(w io.Writer, reportPNG []byte) error {
	img, err := png.DecodeConfig(bytes.NewReader(reportPNG))
	if err != nil {
		return eris.Wrap(err, "export: decode report png")
	}

	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	maxW := pageW - pdfMargin*2
	maxH := pageH - pdfMargin*2

	scale := maxW / float64(img.Width)
	if s := maxH / float64(img.Height); s < scale {
		scale = s
	}
	imgW := float64(img.Width) * scale
	imgH := float64(img.Height) * scale
	x := (pageW - imgW) / 2
	y := (pageH - imgH) / 2

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("report", opts, bytes.NewReader(reportPNG))
	pdf.ImageOptions("report", x, y, imgW, imgH, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return eris.Wrap(err, "export: write pdf")
	}
	return nil
}
