package export

import (
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/inklet/bubble"
)

// jpegQuality is the fixed encode quality for lossy photo export.
const jpegQuality = 92

// Photo renders the live scene at display resolution and writes it as
// PNG or JPEG, chosen by the output extension.
func Photo(scene *bubble.Scene, output string) error {
	if !scene.HasMedia() {
		return ErrNoMedia
	}

	pm, err := scene.Render()
	if err != nil {
		return fmt.Errorf("export: render scene: %w", err)
	}

	switch strings.ToLower(filepath.Ext(output)) {
	case ".png":
		return pm.SavePNG(output)
	case ".jpg", ".jpeg":
		f, err := os.Create(output) //nolint:gosec // user-chosen output path by design
		if err != nil {
			return fmt.Errorf("export: create %s: %w", output, err)
		}
		defer f.Close()
		if err := jpeg.Encode(f, pm.ToImage(), &jpeg.Options{Quality: jpegQuality}); err != nil {
			return fmt.Errorf("export: encode jpeg: %w", err)
		}
		return f.Close()
	default:
		return fmt.Errorf("export: unsupported photo format %q", filepath.Ext(output))
	}
}
