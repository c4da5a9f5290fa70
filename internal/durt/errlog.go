package durt

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/fatih/color"
)

// ErrorLog writes one line per recovered error.
// It is safe for concurrent use, since fastwalk reports errors from multiple goroutines.
type ErrorLog struct {
	mu    sync.Mutex
	w     io.Writer
	color *color.Color
	count int
}

// NewErrorLog creates an ErrorLog writing to w, rendering lines in red when colored is set.
func NewErrorLog(w io.Writer, colored bool) *ErrorLog {
	c := color.New(color.FgRed)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return &ErrorLog{w: w, color: c}
}

// Log writes "<path>: <message>", or "<message>" alone when path is empty.
func (l *ErrorLog) Log(path string, err error) {
	if l == nil || err == nil {
		return
	}

	message := cause(path, err)
	if path != "" {
		message = path + ": " + message
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.count++
	l.color.Fprintln(l.w, message) //nolint:errcheck // Nowhere left to report a failing error stream
}

// Count returns the number of lines written so far.
func (l *ErrorLog) Count() int {
	if l == nil {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.count
}

// cause strips the path out of path-carrying errors when the line already starts with one.
func cause(path string, err error) string {
	if path == "" {
		return err.Error()
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Err.Error()
	}

	return err.Error()
}
