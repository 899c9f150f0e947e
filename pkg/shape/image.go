package shape

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/geom"
)

// NewImage returns an image of the given size hanging from topLeft. The path
// is emitted verbatim and resolved by TeX at compile time.
func NewImage(path string, topLeft geom.Point, width, height float64, style string) *Image {
	return &Image{path: path, topLeft: topLeft, width: width, height: height, style: style}
}

// ImageFromFile returns an image of the given height whose width follows
// the aspect ratio of the file at path. Only the image header is decoded.
//
// Supported formats: PNG, JPEG, GIF, BMP, TIFF and WebP.
func ImageFromFile(path string, topLeft geom.Point, height float64, style string) (*Image, error) {
	w, h, err := ImageSize(path)
	if err != nil {
		return nil, err
	}
	if h == 0 {
		return nil, errs.New(errs.ErrCodeDegenerateGeometry, "image %s has zero height", path).WithOp("image")
	}
	width := height * float64(w) / float64(h)
	return NewImage(path, topLeft, width, height, style), nil
}

// ImageSize returns the pixel dimensions of the image at path.
func ImageSize(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, errs.Wrap(errs.ErrCodeFileNotFound, err, "image not found: %s", path).WithOp("image")
		}
		return 0, 0, errs.Wrap(errs.ErrCodeInvalidPath, err, "open image %s", path).WithOp("image")
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode image header %s", path).WithOp("image")
	}
	return cfg.Width, cfg.Height, nil
}
