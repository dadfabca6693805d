package render

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/matzehuels/shelfplan/pkg/errors"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="10" height="10"><rect width="10" height="10"/></svg>`

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", FormatDOT, false},
		{"dot", FormatDOT, false},
		{"SVG", FormatSVG, false},
		{" pdf ", FormatPDF, false},
		{"png", FormatPNG, false},
		{"jpeg", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("ParseFormat(%q) code = %s, want UNSUPPORTED", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContentType(t *testing.T) {
	for format, want := range map[string]string{
		FormatSVG: "image/svg+xml",
		FormatPDF: "application/pdf",
		FormatPNG: "image/png",
		FormatDOT: "text/vnd.graphviz; charset=utf-8",
	} {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestConvertSVGPassthrough(t *testing.T) {
	out, err := Convert(context.Background(), []byte(testSVG), FormatSVG)
	if err != nil || string(out) != testSVG {
		t.Errorf("Convert(svg) = %q, %v", out, err)
	}
	if _, err := Convert(context.Background(), []byte(testSVG), FormatDOT); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Convert(dot) error = %v, want UNSUPPORTED", err)
	}
}

func TestMissingRsvgConvert(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, err := ToPDF(context.Background(), []byte(testSVG))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() without rsvg-convert: error = %v, want UNSUPPORTED", err)
	}
}

func TestToPNGScale(t *testing.T) {
	if _, err := ToPNG(context.Background(), []byte(testSVG), 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ToPNG(scale 0) error = %v, want INVALID_INPUT", err)
	}
}

func TestConvertWithRsvg(t *testing.T) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	pdf, err := ToPDF(context.Background(), []byte(testSVG))
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("ToPDF() output is not a PDF")
	}
	png, err := ToPNG(context.Background(), []byte(testSVG), 2)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("ToPNG() output is not a PNG")
	}
}
