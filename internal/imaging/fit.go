// Package imaging computes and applies the aspect-preserving fit transform.
package imaging

import (
	"image"
	"math"

	"imgbrowse/internal/errors"

	"github.com/nfnt/resize"
)

// Bounds is the window box an image must fit into, in pixels.
type Bounds struct {
	MaxCols int
	MaxRows int
}

// Options control how the fit transform is applied.
type Options struct {
	AllowUpscale bool
	Filter       resize.InterpolationFunction
}

// FitScale returns the single factor applied to both axes so a w by h image
// fits inside b while preserving aspect ratio. The result exceeds 1.0 when
// the image is smaller than the bounds; clamping is the caller's choice.
func FitScale(w, h int, b Bounds) float64 {
	ratioCols := float64(b.MaxCols) / float64(w)
	ratioRows := float64(b.MaxRows) / float64(h)
	if ratioCols < ratioRows {
		return ratioCols
	}
	return ratioRows
}

// Fit resamples img into a fresh buffer of round(scale*W) by round(scale*H)
// pixels and reports the scale it used.
func Fit(img image.Image, b Bounds, opts Options) (image.Image, float64) {
	size := img.Bounds().Size()
	scale := FitScale(size.X, size.Y, b)
	if !opts.AllowUpscale && scale > 1 {
		scale = 1
	}

	w := int(math.Round(scale * float64(size.X)))
	h := int(math.Round(scale * float64(size.Y)))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	return resize.Resize(uint(w), uint(h), img, opts.Filter), scale
}

// FilterByName maps a configured filter name to its resample kernel.
func FilterByName(name string) (resize.InterpolationFunction, error) {
	switch name {
	case "nearest":
		return resize.NearestNeighbor, nil
	case "bilinear":
		return resize.Bilinear, nil
	case "bicubic":
		return resize.Bicubic, nil
	case "lanczos2":
		return resize.Lanczos2, nil
	case "lanczos3", "":
		return resize.Lanczos3, nil
	default:
		return 0, errors.NewConfigError("unknown resample filter", name, errors.InvalidConfig, nil)
	}
}
