// Package chart draws the discount sensitivity curve.
package chart

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/aaparts/whatif-margin/internal/margin"
)

const (
	width  = 6 * vg.Inch
	height = 4 * vg.Inch
)

var lineColor = color.RGBA{G: 128, A: 255}

// Title returns the chart heading for region.
func Title(region string) string {
	return fmt.Sprintf("Impact of Discount on Gross Margin (%s Region)", region)
}

// Build returns a line plot of gross margin against discount with a marker per point.
func Build(region string, points []margin.Point) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = Title(region)
	p.X.Label.Text = "Discount (%)"
	p.Y.Label.Text = "Gross Margin ($)"

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.DiscountPct
		xys[i].Y = pt.GrossMargin
	}

	line, scatter, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("build margin line: %w", err)
	}
	line.Color = lineColor
	line.Width = vg.Points(2)
	scatter.Shape = draw.CircleGlyph{}
	scatter.Color = lineColor
	scatter.Radius = vg.Points(3)

	p.Add(plotter.NewGrid(), line, scatter)
	return p, nil
}

// WritePNG renders the curve for region as a PNG image to w.
func WritePNG(w io.Writer, region string, points []margin.Point) error {
	p, err := Build(region, points)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
