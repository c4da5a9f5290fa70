package durt

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Entry is a resolved path and its recursive size.
type Entry struct {
	// Path is the path as it was given, not canonicalized.
	Path string `json:"path"`
	// Size is the sum of the lstat sizes of every node under Path, Path included.
	Size uint64 `json:"size"`
	// Device identifies the filesystem holding Path (0 where unsupported).
	Device uint64 `json:"-"`
}

// Resolver computes Entries for paths.
type Resolver struct {
	// Errors receives every recovered error. A nil ErrorLog drops them.
	Errors *ErrorLog
	// Log receives debug traces. Nil discards them.
	Log logrus.FieldLogger
	// Workers is the number of fastwalk workers (0 = fastwalk default).
	Workers int
	// Progress, if set, is called periodically with the running file and byte counts.
	Progress func(files, bytes int64)
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}

// counters hold the running totals of one walk. fastwalk calls back concurrently.
type counters struct {
	files atomic.Int64
	bytes atomic.Int64
}

func (c *counters) add(size int64) {
	c.files.Add(1)
	c.bytes.Add(size)
}

// discard is the logger used when none was configured.
func discard() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func (r Resolver) logger() logrus.FieldLogger {
	if r.Log == nil {
		return discard()
	}

	return r.Log
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
func startProgressReporter(ctx context.Context, c *counters, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.files.Load(), c.bytes.Load())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Resolve computes the Entry for path.
//
// When path itself cannot be lstat'ed, the error is logged and false is returned:
// the path takes no further part in the report. Errors on nodes below path are
// logged and only that node's bytes are left out. Symlinks are never followed.
func (r Resolver) Resolve(ctx context.Context, path string) (Entry, bool) {
	log := r.logger().WithField("path", path)

	info, err := os.Lstat(path)
	if err != nil {
		r.Errors.Log(path, err)

		return Entry{}, false
	}

	entry := Entry{
		Path:   path,
		Size:   uint64(info.Size()), //nolint:gosec // Sizes reported by lstat are never negative
		Device: deviceID(info),
	}

	if !info.IsDir() {
		log.Debugf("resolved non-directory: %s", humanize.IBytes(entry.Size))

		return entry, true
	}

	var total counters

	total.add(info.Size())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, &total, r.Progress, r.ProgressInterval)

	conf := &fastwalk.Config{
		Follow:     false, // Never traverse into symlink targets
		NumWorkers: r.Workers,
	}

	root := filepath.Clean(path)

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, path, func(node string, d fs.DirEntry, err error) error {
		if err != nil {
			r.Errors.Log(node, err)

			return nil
		}

		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		// The root was already accounted for by the lstat above.
		if filepath.Clean(node) == root {
			return nil
		}

		nodeInfo, err := d.Info()
		if err != nil {
			r.Errors.Log(node, err)

			return nil
		}

		total.add(nodeInfo.Size())

		return nil
	})
	if walkErr != nil {
		r.Errors.Log("", walkErr)
	}

	entry.Size = uint64(total.bytes.Load()) //nolint:gosec // Sum of non-negative sizes

	log.WithField("nodes", total.files.Load()).Debugf("resolved directory: %s", humanize.IBytes(entry.Size))

	return entry, true
}

// ResolveAll resolves paths in order, leaving out the ones that could not be read.
func (r Resolver) ResolveAll(ctx context.Context, paths []string) []Entry {
	entries := make([]Entry, 0, len(paths))

	for _, path := range paths {
		if entry, ok := r.Resolve(ctx, path); ok {
			entries = append(entries, entry)
		}
	}

	return entries
}
