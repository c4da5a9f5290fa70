package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/idelchi/durt/internal/durt"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// debugLogger returns a logrus logger writing to w, or nil when debug output is off.
func debugLogger(enabled bool, w io.Writer) logrus.FieldLogger {
	if !enabled {
		return nil
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	return log
}

func logic(ctx context.Context, options Options, stdout, stderr io.Writer) error {
	enableProgress := options.Output == "table" &&
		!options.Debug &&
		isTerminal(stderr)

	colored := !options.NoColor && os.Getenv("NO_COLOR") == "" && isTerminal(stderr)

	errs := durt.NewErrorLog(stderr, colored)
	log := debugLogger(options.Debug, stderr)

	if log != nil {
		log.WithField("config", options.Config).Debug("options loaded")
	}

	// Simple progress callback that prints directly to stderr
	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	resolver := durt.Resolver{
		Errors:   errs,
		Log:      log,
		Workers:  options.Jobs,
		Progress: progressHook,
	}

	entries := resolver.ResolveAll(ctx, options.Paths)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if options.SameFS {
		// Nothing could be read, so there is no first filesystem to compare against.
		if len(entries) == 0 {
			return nil
		}

		entries = durt.SameFilesystem(entries)
	}

	total := durt.Totaler{Errors: errs, Log: log}.Total(entries)

	report := durt.BuildReport(entries, total, durt.ReportOptions{
		Sort:          options.Sort,
		ByPath:        options.ByPath,
		Reverse:       options.Reverse,
		MinPercentage: options.Min,
	})

	switch options.Output {
	case "json":
		return PrintJSON(report, stdout)
	case "table":
		return PrintTable(report, stdout, TableOptions{
			Binary:     options.Binary,
			Percentage: options.Percentage,
			Total:      options.Total,
		})
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}
}
