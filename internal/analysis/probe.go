// Package analysis probes image files for metadata shown by the scan
// command and the TUI detail pane.
package analysis

import (
	"os"

	"imgbrowse/internal/errors"
	"imgbrowse/internal/imaging"
	"imgbrowse/internal/log"
	"imgbrowse/pkg/types"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	exif.RegisterParsers(mknote.All...)
}

// Probe reads the header of the image at path and returns its metadata.
// EXIF enrichment is best effort: absence of EXIF data is not an error.
func Probe(path string) (*types.ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileError("failed to stat file", path, errors.FileNotFound, err)
		}
		return nil, errors.NewFileError("failed to stat file", path, errors.FileAccessDenied, err)
	}

	cfg, format, err := imaging.DecodeConfig(path)
	if err != nil {
		return nil, err
	}

	info := &types.ImageInfo{
		Path:   path,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Size:   stat.Size(),
	}
	attachExif(path, info)
	return info, nil
}

// attachExif fills Taken and Camera from EXIF tags when the file has them.
func attachExif(path string, info *types.ImageInfo) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		log.Debugf("no EXIF data for %s: %v", path, err)
		return
	}

	if dt, err := x.Get(exif.DateTimeOriginal); err == nil {
		if s, err := dt.StringVal(); err == nil && s != "" {
			info.Taken = s
		}
	}
	if model, err := x.Get(exif.Model); err == nil {
		if s, err := model.StringVal(); err == nil && s != "" {
			info.Camera = s
		}
	}
}
