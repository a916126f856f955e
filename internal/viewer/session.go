// Package viewer drives the image browsing loop: decode the file at the
// current index, fit it to the window bounds, hand it to the display, block
// for one key press, and move through the list accordingly.
package viewer

import (
	"fmt"
	"image"
	"io"
	"os"

	"imgbrowse/internal/errors"
	"imgbrowse/internal/imaging"
	"imgbrowse/internal/log"
	"imgbrowse/internal/watch"

	"github.com/nfnt/resize"
)

// Keys the loop dispatches on. Every other key behaves like KeyNext.
const (
	KeyQuit  = 'q'
	KeyNext  = 'n'
	KeyPrev  = 'p'
	KeySpace = ' '
)

// Frame is one fitted image ready for display.
type Frame struct {
	Index  int
	Path   string
	Image  image.Image // resampled to fit the window bounds
	Width  int         // native width
	Height int         // native height
	Scale  float64
}

// Display renders frames and reports the single key pressed while a frame
// was showing. Close is called exactly once, after the loop ends, however
// it ended.
type Display interface {
	Show(frame Frame) (rune, error)
	Close()
}

// Decoder turns a path into a decoded image. Split out so tests can drive
// the loop without real files.
type Decoder func(path string) (image.Image, string, error)

// Config carries the window bounds and fit behavior into the session,
// replacing what used to be process-wide state.
type Config struct {
	Bounds       imaging.Bounds
	AllowUpscale bool
	Filter       resize.InterpolationFunction
	Out          io.Writer
}

// Session owns the file list and the current index. It is single-threaded:
// all mutation happens inside Run, and external events only arrive through
// the updates channel, drained between key presses.
type Session struct {
	files   []string
	index   int
	cfg     Config
	display Display
	decode  Decoder
	updates <-chan watch.Event
}

// Option configures a Session.
type Option func(*Session)

// WithDecoder replaces the default image decoder.
func WithDecoder(d Decoder) Option {
	return func(s *Session) { s.decode = d }
}

// WithUpdates attaches a live file-event stream whose additions and
// removals are applied between key presses.
func WithUpdates(ch <-chan watch.Event) Option {
	return func(s *Session) { s.updates = ch }
}

// New creates a session over files. The slice is owned by the session from
// here on.
func New(files []string, display Display, cfg Config, opts ...Option) *Session {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	s := &Session{
		files:   files,
		cfg:     cfg,
		display: display,
		decode:  imaging.Decode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Files returns the current file list.
func (s *Session) Files() []string {
	return s.files
}

// Index returns the current position in the file list.
func (s *Session) Index() int {
	return s.index
}

// Run walks the list until the user quits or the index runs past the end.
// Decode failures drop the entry in place and retry the same index; display
// failures abort. The display is closed on every exit path.
func (s *Session) Run() error {
	defer s.display.Close()

	for s.index < len(s.files) {
		// Pending removals can shrink the list past the index.
		s.applyPending()
		if s.index >= len(s.files) {
			break
		}

		path := s.files[s.index]
		img, _, err := s.decode(path)
		if err != nil {
			// Not an image: drop the entry and re-check the same index.
			log.Debugf("skipping %s: %v", path, err)
			s.removeAt(s.index)
			continue
		}

		native := img.Bounds().Size()
		fitted, scale := imaging.Fit(img, s.cfg.Bounds, imaging.Options{
			AllowUpscale: s.cfg.AllowUpscale,
			Filter:       s.cfg.Filter,
		})

		fmt.Fprintf(s.cfg.Out, "%05d. %60s\t%dx%d\n", s.index, path, native.X, native.Y)

		key, err := s.display.Show(Frame{
			Index:  s.index,
			Path:   path,
			Image:  fitted,
			Width:  native.X,
			Height: native.Y,
			Scale:  scale,
		})
		if err != nil {
			return errors.NewDisplayError("failed to show image", err)
		}

		switch key {
		case KeyQuit:
			return nil
		case KeyPrev:
			// At index 0 the same image is shown again.
			if s.index > 0 {
				s.index--
			}
		default:
			// n, space, and every unbound key advance.
			s.index++
		}
	}
	return nil
}

// applyPending drains the update channel without blocking.
func (s *Session) applyPending() {
	if s.updates == nil {
		return
	}
	for {
		select {
		case ev := <-s.updates:
			switch ev.Op {
			case watch.Added:
				s.add(ev.Path)
			case watch.Removed:
				s.remove(ev.Path)
			}
		default:
			return
		}
	}
}

func (s *Session) add(path string) {
	for _, f := range s.files {
		if f == path {
			return
		}
	}
	s.files = append(s.files, path)
	log.Debugf("added to list: %s", path)
}

func (s *Session) remove(path string) {
	for i, f := range s.files {
		if f == path {
			s.removeAt(i)
			log.Debugf("removed from list: %s", path)
			return
		}
	}
}

// removeAt deletes the entry at i, keeping the index pointed at the same
// logical position: entries removed before it shift it left by one.
func (s *Session) removeAt(i int) {
	s.files = append(s.files[:i], s.files[i+1:]...)
	if i < s.index {
		s.index--
	}
}
