package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/anchorui/pkg/errors"
)

// rsvgConvert is the librsvg tool that performs every conversion.
var rsvgConvert = "rsvg-convert"

const installHint = "install librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux)"

// ToPDF converts an SVG document to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return Convert(context.Background(), svg, "pdf", 1)
}

// ToPNG rasterizes an SVG document. A scale of 2 doubles both dimensions.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return Convert(context.Background(), svg, "png", scale)
}

// Convert pipes svg through rsvg-convert and returns the output in format
// ("pdf" or "png"). A missing tool is reported as UNSUPPORTED.
func Convert(ctx context.Context, svg []byte, format string, scale float64) ([]byte, error) {
	bin, err := exec.LookPath(rsvgConvert)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "%s output needs %s; %s", format, rsvgConvert, installHint)
	}

	args := []string{"--format", format}
	if scale > 0 && scale != 1 {
		args = append(args, "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", rsvgConvert, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
