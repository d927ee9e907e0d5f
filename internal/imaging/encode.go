package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// PNGMimeType is the MIME type of every image returned inline by the server.
const PNGMimeType = "image/png"

// JPEGQuality is used when an output path asks for JPEG.
const JPEGQuality = 95

// EncodePNGBase64 encodes img as PNG and returns it base64 encoded, ready to
// be placed in an MCP image content block.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Save writes img to path. The encoder is chosen from the extension:
// PNG, JPEG and BMP go through bild's imgio encoders, GIF and TIFF through
// disintegration/imaging. WebP is decode only.
//
// Missing parent directories are created.
func Save(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var err error
	switch format := FormatFromExt(path); format {
	case "png":
		err = imgio.Save(path, img, imgio.PNGEncoder())
	case "jpeg":
		err = imgio.Save(path, img, imgio.JPEGEncoder(JPEGQuality))
	case "bmp":
		err = imgio.Save(path, img, imgio.BMPEncoder())
	case "gif", "tiff":
		err = imaging.Save(img, path)
	default:
		return fmt.Errorf("unsupported output format %q for %s", format, path)
	}
	if err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
