// Package testutils provides fixture helpers shared by the test suites.
package testutils

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WritePNG writes a solid-color PNG of the given dimensions, creating parent
// directories as needed.
func WritePNG(t *testing.T, path string, w, h int) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// WriteJunk writes a file no image decoder recognizes.
func WriteJunk(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// CreateImageTree builds a nested directory fixture with images at several
// depths plus one non-image file, and returns the paths of the images.
func CreateImageTree(t *testing.T, root string) []string {
	t.Helper()

	images := []string{
		filepath.Join(root, "a.png"),
		filepath.Join(root, "sub", "b.png"),
		filepath.Join(root, "sub", "deeper", "c.png"),
	}
	for _, p := range images {
		WritePNG(t, p, 8, 6)
	}
	WriteJunk(t, filepath.Join(root, "sub", "notes.txt"), "not an image")
	return images
}
