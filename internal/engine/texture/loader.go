package texture

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/imageplane/internal/logger"
)

// ErrPending is returned by Future.Result before the decode has finished.
var ErrPending = errors.New("texture decode pending")

// Future is the result of an asynchronous decode.
// It completes exactly once and is safe to read from any goroutine.
type Future struct {
	path string
	done chan struct{}
	img  *Image
	err  error
}

// CompleteFunc finishes a future. Only the first call has an effect.
type CompleteFunc func(img *Image, err error)

// NewFuture returns a pending future and the function that completes it.
func NewFuture(path string) (*Future, CompleteFunc) {
	f := &Future{path: path, done: make(chan struct{})}
	var once sync.Once
	return f, func(img *Image, err error) {
		once.Do(func() {
			f.img, f.err = img, err
			close(f.done)
		})
	}
}

// Resolved returns an already completed future.
func Resolved(img *Image, err error) *Future {
	f, complete := NewFuture("")
	complete(img, err)
	return f
}

// Path returns the source path of the decode, if any.
func (f *Future) Path() string {
	return f.path
}

// Done is closed when the decode finishes.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether the decode has finished, without blocking.
func (f *Future) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result returns the decoded image, or ErrPending if not finished yet.
func (f *Future) Result() (*Image, error) {
	if !f.Ready() {
		return nil, ErrPending
	}
	return f.img, f.err
}

// Wait blocks until the decode finishes or ctx is done.
func (f *Future) Wait(ctx context.Context) (*Image, error) {
	select {
	case <-f.done:
		return f.img, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Loader decodes image files off the frame loop.
// There is no cancellation: a started decode always runs to completion.
type Loader struct {
	log *zap.Logger
}

// NewLoader creates a loader.
func NewLoader() *Loader {
	return &Loader{log: logger.Named("texture")}
}

// Load starts decoding path in a new goroutine.
func (l *Loader) Load(path string) *Future {
	f, complete := NewFuture(path)
	go func() {
		start := time.Now()
		img, err := DecodeFile(path)
		if err == nil {
			l.log.Debug("decoded",
				zap.String("path", path),
				zap.String("format", img.Format),
				zap.Int("width", img.NativeWidth),
				zap.Int("height", img.NativeHeight),
				zap.Duration("took", time.Since(start)))
		}
		complete(img, err)
	}()
	return f
}
