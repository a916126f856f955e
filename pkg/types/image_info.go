package types

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// ImageInfo represents probed image metadata
type ImageInfo struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
	Taken  string `json:"taken,omitempty"`  // EXIF DateTimeOriginal, when present
	Camera string `json:"camera,omitempty"` // EXIF camera model, when present
}

// Name returns the base name of the file
func (i *ImageInfo) Name() string {
	return filepath.Base(i.Path)
}

// Resolution returns the native dimensions as "WxH"
func (i *ImageInfo) Resolution() string {
	return fmt.Sprintf("%dx%d", i.Width, i.Height)
}

// ToJSON converts ImageInfo to a JSON string
func (i *ImageInfo) ToJSON() string {
	jsonBytes, _ := json.Marshal(i)
	return string(jsonBytes)
}

// String returns a human-readable representation
func (i *ImageInfo) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File: %s\n", i.Path))
	sb.WriteString(fmt.Sprintf("Format: %s\n", i.Format))
	sb.WriteString(fmt.Sprintf("Resolution: %s\n", i.Resolution()))
	sb.WriteString(fmt.Sprintf("Size: %d bytes\n", i.Size))
	if i.Taken != "" {
		sb.WriteString(fmt.Sprintf("Taken: %s\n", i.Taken))
	}
	if i.Camera != "" {
		sb.WriteString(fmt.Sprintf("Camera: %s\n", i.Camera))
	}
	return sb.String()
}
