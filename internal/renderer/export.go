package renderer

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"strings"

	"github.com/ankek/flow-cartography/internal/flow"
)

const jpegQuality = 92

// ExportDiagram renders the graph and writes the encoded image to
// outputPath. Supported formats are "png" (the default when format is
// empty) and "jpg"/"jpeg".
func ExportDiagram(ctx context.Context, g *flow.Graph, outputPath, format string, opts RenderOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := Render(g, opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "", "png":
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
	case "jpg", "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q (use png or jpeg)", format)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write diagram: %w", err)
	}
	return nil
}
