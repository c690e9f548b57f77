package capture

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	// Registered decoders for screen images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FileSource serves an image file as the screen.
// Reload replaces the image; a failed reload keeps the previous one.
type FileSource struct {
	path string

	mu     sync.RWMutex
	screen *image.RGBA
	closed bool

	watcher *Watcher
}

// OpenFile decodes path and returns a source serving it.
func OpenFile(path string) (*FileSource, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{path: path, screen: img}, nil
}

func decodeFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode %s: empty %s image", path, format)
	}
	return toRGBA(img), nil
}

// Path returns the image path.
func (s *FileSource) Path() string {
	return s.path
}

// Bounds returns the rectangle of the current image.
func (s *FileSource) Bounds() image.Rectangle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screen.Bounds()
}

// CaptureInto copies r of the current image into dst.
func (s *FileSource) CaptureInto(ctx context.Context, dst *image.RGBA, r image.Rectangle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}
	if err := checkRect(s.screen.Bounds(), dst, r); err != nil {
		return err
	}
	copyRect(dst, s.screen, r)
	return nil
}

// Reload decodes the file again and swaps it in.
func (s *FileSource) Reload() error {
	img, err := decodeFile(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.screen = img
	return nil
}

// Watch starts watching the file. Changes are delivered on Changes after
// the debounce delay; the caller decides when to Reload.
func (s *FileSource) Watch(delay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.watcher != nil {
		return ErrAlreadyWatching
	}

	w, err := NewWatcher(s.path, delay)
	if err != nil {
		return err
	}
	s.watcher = w
	return nil
}

// Changes returns the change channel, or nil when the file is not watched.
func (s *FileSource) Changes() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Changes()
}

// Errors returns the watcher error channel, or nil when not watching.
func (s *FileSource) Errors() <-chan error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Errors()
}

// Close stops watching and releases the image.
func (s *FileSource) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	w := s.watcher
	s.mu.Unlock()

	if w != nil {
		return w.Close()
	}
	return nil
}

var _ Source = (*FileSource)(nil)
