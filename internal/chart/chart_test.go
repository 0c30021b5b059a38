package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/aaparts/whatif-margin/internal/margin"
)

func TestWritePNG_ProducesDecodableImage(t *testing.T) {
	points := margin.Sweep(900, 620, 1, "WEST", margin.DefaultDiscounts())

	var buf bytes.Buffer
	if err := WritePNG(&buf, "WEST", points); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		t.Fatalf("empty image bounds: %v", b)
	}
}

func TestBuild_AxesFollowSweep(t *testing.T) {
	points := margin.Sweep(900, 620, 1, "NORTHEAST", margin.DefaultDiscounts())

	p, err := Build("NORTHEAST", points)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Title.Text != "Impact of Discount on Gross Margin (NORTHEAST Region)" {
		t.Fatalf("unexpected title %q", p.Title.Text)
	}
	if p.X.Min > 0 || p.X.Max < 50 {
		t.Fatalf("x range [%v, %v] does not cover 0..50", p.X.Min, p.X.Max)
	}
	if p.Y.Max < points[0].GrossMargin || p.Y.Min > points[len(points)-1].GrossMargin {
		t.Fatalf("y range [%v, %v] does not cover the sweep", p.Y.Min, p.Y.Max)
	}
}
