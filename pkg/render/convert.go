package render

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Output formats recognised from an artifact's file extension.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ErrConverterMissing is returned when rsvg-convert is not installed.
var ErrConverterMissing = errors.New("rsvg-convert not found")

// FormatOf returns the image format implied by path's extension, defaulting
// to SVG for unknown or missing extensions.
func FormatOf(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case FormatPNG:
		return FormatPNG
	case FormatPDF:
		return FormatPDF
	default:
		return FormatSVG
	}
}

// Convert turns SVG bytes into format. SVG input is returned unchanged.
func Convert(svg []byte, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPDF:
		return ToPDF(svg)
	case FormatPNG:
		return ToPNG(svg, 2.0)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, FormatPDF)
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, FormatPNG, "-z", fmt.Sprintf("%.2f", scale))
}

func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("%w: %s export requires librsvg (brew install librsvg, apt install librsvg2-bin)", ErrConverterMissing, format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
