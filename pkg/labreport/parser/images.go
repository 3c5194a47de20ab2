package parser

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/canyalcin1/alis-vz/pkg/labreport/models"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// mimeTypes maps picture extensions to media types for the inline marker.
var mimeTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"emf":  "image/emf",
	"wmf":  "image/wmf",
	"emz":  "image/x-emz",
	"wmz":  "image/x-wmz",
}

// decodeImage builds the model image for an embedded picture. The extension
// reported by the workbook wins; when it is missing the decoder's format name
// is used. Vector formats are kept without dimensions.
func decodeImage(ext string, data []byte) models.Image {
	format := strings.ToLower(strings.TrimPrefix(ext, "."))
	img := models.Image{Format: format, Data: data}

	if cfg, name, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width, img.Height = cfg.Width, cfg.Height
		if img.Format == "" {
			img.Format = name
		}
	}

	if img.Format == "" {
		img.Format = "bin"
	}
	img.MIME = mimeTypes[img.Format]
	return img
}
