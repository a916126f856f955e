package imaging

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"imgbrowse/internal/errors"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads and fully decodes the image file at path. A file that is not
// a recognized image yields a DecodeError, the viewer's recoverable case.
func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", errors.NewFileError("failed to open file", path, errors.FileAccessDenied, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", errors.NewDecodeError("not a recognized image", path, err)
	}
	return img, format, nil
}

// DecodeConfig reads only the image header, returning dimensions and format
// without decoding pixel data.
func DecodeConfig(path string) (image.Config, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", errors.NewFileError("failed to open file", path, errors.FileAccessDenied, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, "", errors.NewDecodeError("not a recognized image", path, err)
	}
	return cfg, format, nil
}
