package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/modgraph/pkg/errors"
)

// rsvg is the librsvg command line converter used for raster and PDF output.
var rsvg = "rsvg-convert"

// ToPDF converts an SVG document to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG converts an SVG document to PNG, scaled by zoom (1 keeps the SVG size).
func ToPNG(ctx context.Context, svg []byte, zoom float64) ([]byte, error) {
	if zoom <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", zoom)
	}
	return convert(ctx, svg, "png", "--zoom", strconv.FormatFloat(zoom, 'f', 2, 64))
}

// convert pipes svg through rsvg-convert. A missing binary is reported as
// UNSUPPORTED with install hints.
func convert(ctx context.Context, svg []byte, format string, flags ...string) ([]byte, error) {
	bin, err := exec.LookPath(rsvg)
	if err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s output needs %s (macOS: brew install librsvg, Debian/Ubuntu: apt install librsvg2-bin)", format, rsvg)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, append([]string{"--format", format}, flags...)...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", rsvg, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
