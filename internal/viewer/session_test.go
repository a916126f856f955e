package viewer_test

import (
	"bytes"
	"image"
	"testing"

	"imgbrowse/internal/errors"
	"imgbrowse/internal/imaging"
	"imgbrowse/internal/viewer"
	"imgbrowse/internal/watch"

	"github.com/nfnt/resize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptDisplay plays back a fixed key sequence and records every frame it
// was asked to show. Running out of keys behaves like pressing q.
type scriptDisplay struct {
	keys   []rune
	frames []viewer.Frame
	closed int
}

func (d *scriptDisplay) Show(f viewer.Frame) (rune, error) {
	d.frames = append(d.frames, f)
	if len(d.keys) == 0 {
		return viewer.KeyQuit, nil
	}
	k := d.keys[0]
	d.keys = d.keys[1:]
	return k, nil
}

func (d *scriptDisplay) Close() { d.closed++ }

func (d *scriptDisplay) shownIndices() []int {
	idx := make([]int, len(d.frames))
	for i, f := range d.frames {
		idx[i] = f.Index
	}
	return idx
}

// fakeDecoder returns a fixed 64x48 image for every path not listed in bad.
func fakeDecoder(bad map[string]bool) viewer.Decoder {
	return func(path string) (image.Image, string, error) {
		if bad[path] {
			return nil, "", errors.NewDecodeError("not a recognized image", path, nil)
		}
		return image.NewRGBA(image.Rect(0, 0, 64, 48)), "png", nil
	}
}

func testConfig() viewer.Config {
	return viewer.Config{
		Bounds:       imaging.Bounds{MaxCols: 32, MaxRows: 32},
		AllowUpscale: true,
		Filter:       resize.NearestNeighbor,
		Out:          &bytes.Buffer{},
	}
}

func newSession(files []string, d *scriptDisplay, opts ...viewer.Option) *viewer.Session {
	opts = append([]viewer.Option{viewer.WithDecoder(fakeDecoder(nil))}, opts...)
	return viewer.New(files, d, testConfig(), opts...)
}

func TestAdvanceThroughListAndExhaust(t *testing.T) {
	d := &scriptDisplay{keys: []rune{'n', ' ', 'n'}}
	s := newSession([]string{"a", "b", "c"}, d)

	require.NoError(t, s.Run())
	assert.Equal(t, []int{0, 1, 2}, d.shownIndices())
	assert.Equal(t, 1, d.closed, "display torn down exactly once")
}

func TestQuitStopsImmediately(t *testing.T) {
	d := &scriptDisplay{keys: []rune{'q'}}
	s := newSession([]string{"a", "b", "c"}, d)

	require.NoError(t, s.Run())
	assert.Equal(t, []int{0}, d.shownIndices())
	assert.Equal(t, 1, d.closed)
}

func TestPrevMovesBackOne(t *testing.T) {
	d := &scriptDisplay{keys: []rune{'n', 'p', 'q'}}
	s := newSession([]string{"a", "b"}, d)

	require.NoError(t, s.Run())
	assert.Equal(t, []int{0, 1, 0}, d.shownIndices())
}

func TestPrevAtZeroReshowsFirst(t *testing.T) {
	d := &scriptDisplay{keys: []rune{'p', 'p', 'q'}}
	s := newSession([]string{"a", "b"}, d)

	require.NoError(t, s.Run())
	assert.Equal(t, []int{0, 0, 0}, d.shownIndices())
}

func TestUnboundKeyAdvances(t *testing.T) {
	d := &scriptDisplay{keys: []rune{'x', 'q'}}
	s := newSession([]string{"a", "b"}, d)

	require.NoError(t, s.Run())
	assert.Equal(t, []int{0, 1}, d.shownIndices())
}

func TestUndecodableEntryIsDropped(t *testing.T) {
	d := &scriptDisplay{keys: []rune{'q'}}
	s := viewer.New([]string{"bad", "good"}, d, testConfig(),
		viewer.WithDecoder(fakeDecoder(map[string]bool{"bad": true})))

	require.NoError(t, s.Run())

	// Exactly one display call, on the decodable entry, and the bad entry
	// is gone from any further navigation.
	require.Len(t, d.frames, 1)
	assert.Equal(t, "good", d.frames[0].Path)
	assert.Equal(t, 0, d.frames[0].Index)
	assert.Equal(t, []string{"good"}, s.Files())
}

func TestAllEntriesUndecodableTerminatesCleanly(t *testing.T) {
	d := &scriptDisplay{}
	s := viewer.New([]string{"bad1", "bad2"}, d, testConfig(),
		viewer.WithDecoder(fakeDecoder(map[string]bool{"bad1": true, "bad2": true})))

	require.NoError(t, s.Run())
	assert.Empty(t, d.frames)
	assert.Empty(t, s.Files())
	assert.Equal(t, 1, d.closed)
}

func TestFrameCarriesFitAndNativeSize(t *testing.T) {
	d := &scriptDisplay{keys: []rune{'q'}}
	s := newSession([]string{"a"}, d)

	require.NoError(t, s.Run())
	require.Len(t, d.frames, 1)

	f := d.frames[0]
	assert.Equal(t, 64, f.Width)
	assert.Equal(t, 48, f.Height)
	// 64x48 into 32x32: width is the tighter axis.
	assert.InDelta(t, 0.5, f.Scale, 1e-9)
	assert.Equal(t, 32, f.Image.Bounds().Dx())
	assert.Equal(t, 24, f.Image.Bounds().Dy())
}

func TestConsoleLineFormat(t *testing.T) {
	out := &bytes.Buffer{}
	cfg := testConfig()
	cfg.Out = out

	d := &scriptDisplay{keys: []rune{'q'}}
	s := viewer.New([]string{"pics/cat.png"}, d, cfg, viewer.WithDecoder(fakeDecoder(nil)))

	require.NoError(t, s.Run())
	line := out.String()
	assert.Contains(t, line, "00000. ")
	assert.Contains(t, line, "pics/cat.png")
	assert.Contains(t, line, "64x48")
}

func TestWatchUpdatesAppliedBetweenKeys(t *testing.T) {
	updates := make(chan watch.Event, 4)
	updates <- watch.Event{Path: "late", Op: watch.Added}

	d := &scriptDisplay{keys: []rune{'n', 'q'}}
	s := newSession([]string{"a"}, d, viewer.WithUpdates(updates))

	require.NoError(t, s.Run())
	require.Len(t, d.frames, 2)
	assert.Equal(t, "late", d.frames[1].Path)
	assert.Equal(t, []string{"a", "late"}, s.Files())
}

func TestWatchRemovalOfLastEntryEndsSession(t *testing.T) {
	// The sole entry disappears before the first frame; the loop must end
	// cleanly instead of reading past the shrunken list.
	updates := make(chan watch.Event, 4)
	updates <- watch.Event{Path: "a", Op: watch.Removed}

	d := &scriptDisplay{}
	s := newSession([]string{"a"}, d, viewer.WithUpdates(updates))

	require.NoError(t, s.Run())
	assert.Empty(t, d.frames)
	assert.Empty(t, s.Files())
	assert.Equal(t, 1, d.closed)
}

func TestWatchRemovalBehindIndexKeepsPosition(t *testing.T) {
	updates := make(chan watch.Event, 4)

	// Queue the removal of "a" while "b" is being decoded, so the event is
	// applied after the index has already moved past it.
	inner := fakeDecoder(nil)
	decode := func(path string) (image.Image, string, error) {
		if path == "b" {
			updates <- watch.Event{Path: "a", Op: watch.Removed}
		}
		return inner(path)
	}

	d := &scriptDisplay{keys: []rune{'n', 'n', 'q'}}
	s := viewer.New([]string{"a", "b", "c"}, d, testConfig(),
		viewer.WithDecoder(decode), viewer.WithUpdates(updates))

	require.NoError(t, s.Run())

	paths := make([]string, len(d.frames))
	for i, f := range d.frames {
		paths[i] = f.Path
	}
	assert.Equal(t, []string{"a", "b", "c"}, paths)
	assert.Equal(t, []string{"b", "c"}, s.Files())
}
