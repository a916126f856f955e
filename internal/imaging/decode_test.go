package imaging_test

import (
	"path/filepath"
	"testing"

	"imgbrowse/internal/errors"
	"imgbrowse/internal/imaging"
	"imgbrowse/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("decodes a png", func(t *testing.T) {
		path := filepath.Join(tmpDir, "ok.png")
		testutils.WritePNG(t, path, 12, 7)

		img, format, err := imaging.Decode(path)
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 12, img.Bounds().Dx())
		assert.Equal(t, 7, img.Bounds().Dy())
	})

	t.Run("unrecognized content is a decode error", func(t *testing.T) {
		path := filepath.Join(tmpDir, "junk.png")
		testutils.WriteJunk(t, path, "definitely not pixels")

		_, _, err := imaging.Decode(path)
		require.Error(t, err)
		assert.True(t, errors.IsDecodeFailed(err))
	})

	t.Run("missing file is a file error", func(t *testing.T) {
		_, _, err := imaging.Decode(filepath.Join(tmpDir, "absent.png"))
		require.Error(t, err)
		assert.False(t, errors.IsDecodeFailed(err))
	})
}

func TestDecodeConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dims.png")
	testutils.WritePNG(t, path, 33, 21)

	cfg, format, err := imaging.DecodeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 33, cfg.Width)
	assert.Equal(t, 21, cfg.Height)
}
