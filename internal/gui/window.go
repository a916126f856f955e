// Package gui puts the viewer loop behind a fyne window. The window is the
// Display: Show swaps the canvas image and blocks until a key arrives from
// the fyne event callbacks.
package gui

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"imgbrowse/internal/imaging"
	"imgbrowse/internal/viewer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
)

// Window is the fixed-size browser window.
type Window struct {
	fyneApp fyne.App
	win     fyne.Window
	image   *canvas.Image

	keys      chan rune
	closeOnce sync.Once
}

// NewWindow creates the browser window sized to bounds. It must be created
// on the main goroutine, before the viewer session starts.
func NewWindow(title string, bounds imaging.Bounds) *Window {
	fyneApp := app.NewWithID("io.github.imgbrowse")

	win := fyneApp.NewWindow(title)
	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	img.FillMode = canvas.ImageFillOriginal
	win.SetContent(img)
	win.SetPadded(false)
	win.Resize(fyne.NewSize(float32(bounds.MaxCols), float32(bounds.MaxRows)))
	win.SetFixedSize(true)

	w := &Window{
		fyneApp: fyneApp,
		win:     win,
		image:   img,
		keys:    make(chan rune, 1),
	}

	win.Canvas().SetOnTypedRune(w.pressed)
	win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		// Arrow keys alias the letter bindings; everything else that
		// produces a rune arrives through SetOnTypedRune.
		switch ev.Name {
		case fyne.KeyLeft:
			w.pressed(viewer.KeyPrev)
		case fyne.KeyRight:
			w.pressed(viewer.KeyNext)
		case fyne.KeyEscape:
			w.pressed(viewer.KeyQuit)
		}
	})

	// The window close button behaves like pressing q; the session winds
	// down and tears the window down itself.
	win.SetCloseIntercept(func() {
		w.pressed(viewer.KeyQuit)
	})

	return w
}

func (w *Window) pressed(r rune) {
	select {
	case w.keys <- r:
	default:
		// A key is already queued; the loop only consumes one per frame.
	}
}

// Show implements viewer.Display. It is called from the session goroutine;
// fyne v2.5 accepts canvas mutation off the main goroutine, but under the
// v2.6 single-thread model these updates must move into fyne.Do.
func (w *Window) Show(frame viewer.Frame) (rune, error) {
	w.image.Image = frame.Image
	w.image.Refresh()
	w.win.SetTitle(fmt.Sprintf("Browser - %s", filepath.Base(frame.Path)))

	r, ok := <-w.keys
	if !ok {
		return viewer.KeyQuit, nil
	}
	return r, nil
}

// Close implements viewer.Display. Safe to call once per session; it stops
// the fyne event loop, which destroys the window.
func (w *Window) Close() {
	w.closeOnce.Do(func() {
		w.fyneApp.Quit()
	})
}

// Run starts the session on a worker goroutine and hands the main goroutine
// to the fyne event loop. It returns the session's error once the window is
// gone.
func (w *Window) Run(session func() error) error {
	errc := make(chan error, 1)
	go func() {
		errc <- session()
	}()

	w.win.ShowAndRun()
	return <-errc
}
