package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	gserrors "github.com/matzehuels/gridshift/pkg/errors"
)

// rsvgConvert is the converter binary looked up on PATH.
var rsvgConvert = "rsvg-convert"

// ToPDF converts SVG bytes to PDF using rsvg-convert. Without it the error
// has code ErrCodeUnsupported.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	bin, err := exec.LookPath(rsvgConvert)
	if err != nil {
		return nil, gserrors.New(gserrors.ErrCodeUnsupported,
			"pdf export requires %s from librsvg (brew install librsvg, apt install librsvg2-bin)", rsvgConvert)
	}

	cmd := exec.Command(bin, "-f", "pdf")
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", rsvgConvert, err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
