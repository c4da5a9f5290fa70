package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/durt/internal/config"
	"github.com/idelchi/durt/internal/durt"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Options holds the parsed command line.
type Options struct {
	// Paths are the files or directories to measure, in the order given.
	Paths []string
	// Binary selects binary prefixes (KiB, MiB, ...).
	Binary bool
	// Percentage shows each entry's share of the total.
	Percentage bool
	// Min omits entries below this percentage (nil = keep all).
	Min *float64
	// Total prints the unique total at the end.
	Total bool
	// Sort orders entries by ascending size.
	Sort bool
	// ByPath sorts by path instead of size.
	ByPath bool
	// Reverse reverses the order of the entries.
	Reverse bool
	// SameFS drops entries on a different filesystem than the first path.
	SameFS bool
	// Output represents output format (table or json).
	Output string
	// Jobs is the number of walker goroutines (0 = default).
	Jobs int
	// Config is the configuration file path.
	Config string
	// NoColor disables coloured error lines.
	NoColor bool
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Version indicates whether to show version and exit.
	Version bool
}

//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{"table", "json"}

func long() string {
	return heredoc.Doc(`
		durt calculates the size of files and directories.

		Each path is measured recursively without following symlinks.
		The total printed with --total counts every file once, even when
		a path lies inside another path given on the command line.

		Defaults for all flags can be set in a YAML file (default location
		shown for --config), using the long flag names as keys:

			binary: true
			total: true
			min: 1.5
	`)
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var (
		options Options
		minimum float64
	)

	cmd := &cobra.Command{
		Use:           "durt [flags] <path>...",
		Short:         "Calculate the size of files and directories",
		Long:          long(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if options.Version {
				fmt.Fprintln(cmd.OutOrStdout(), c.version)

				return nil
			}

			if len(args) == 0 {
				return cmd.Help()
			}

			options.Paths = args

			flags := cmd.Flags()
			if flags.Changed("min") {
				options.Min = &minimum
			}

			if err := options.applyConfig(flags); err != nil {
				return err
			}

			if err := options.validate(); err != nil {
				return err
			}

			return logic(cmd.Context(), options, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.BoolVarP(&options.Binary, "binary", "b", false, "Use binary prefixes (Ki, Mi, Gi, etc.) instead of decimal")
	flags.BoolVarP(&options.Percentage, "percentage", "P", false, "Show each entry's percentage relative to the total")
	flags.Float64VarP(&minimum, "min", "m", 0, "Omit entries with a percentage less than this")
	flags.BoolVarP(&options.Total, "total", "t", false, "Print the sum of all sizes at the end")
	flags.BoolVarP(&options.Sort, "sort", "s", false, "Print entries in ascending order of size")
	flags.BoolVarP(&options.ByPath, "by-path", "p", false, "Sort by path instead of by size")
	flags.BoolVarP(&options.Reverse, "reverse", "r", false, "Reverse the order of the entries")
	flags.BoolVarP(&options.SameFS, "same-fs", "f", false,
		"Ignore entries from filesystems different from that of the first path passed")
	flags.StringVarP(&options.Output, "output", "o", "table", "Output format: json or table")
	flags.IntVarP(&options.Jobs, "jobs", "j", 0, "Number of walker goroutines per path (0=default)")
	flags.StringVarP(&options.Config, "config", "c", config.DefaultPath(), "Configuration file")
	flags.BoolVar(&options.NoColor, "no-color", false, "Disable coloured error output")
	flags.BoolVar(&options.Debug, "debug", false, "Enable debug output")
	flags.BoolVarP(&options.Version, "version", "v", false, "Show version and exit")

	if !durt.SupportsDevice {
		_ = flags.MarkHidden("same-fs")
	}

	return cmd
}

// applyConfig fills every flag that was not set explicitly from the configuration file.
//
//nolint:cyclop // One branch per flag
func (o *Options) applyConfig(flags *pflag.FlagSet) error {
	if flags.Changed("config") {
		if _, err := os.Stat(o.Config); err != nil {
			return fmt.Errorf("accessing config file: %w", err)
		}
	}

	cfg, err := config.Load(o.Config)
	if err != nil {
		return err
	}

	set := func(name string, dst *bool, value bool) {
		if !flags.Changed(name) {
			*dst = value
		}
	}

	set("binary", &o.Binary, cfg.Binary)
	set("percentage", &o.Percentage, cfg.Percentage)
	set("total", &o.Total, cfg.Total)
	set("sort", &o.Sort, cfg.Sort)
	set("by-path", &o.ByPath, cfg.ByPath)
	set("reverse", &o.Reverse, cfg.Reverse)
	set("same-fs", &o.SameFS, cfg.SameFS)
	set("no-color", &o.NoColor, cfg.NoColor)

	if !flags.Changed("min") && cfg.Min != nil {
		o.Min = cfg.Min
	}

	if !flags.Changed("output") {
		o.Output = cfg.Output
	}

	if !flags.Changed("jobs") {
		o.Jobs = cfg.Jobs
	}

	return nil
}

func (o *Options) validate() error {
	if !slices.Contains(allowedOutputs, o.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", o.Output, allowedOutputs)
	}

	if o.Jobs < 0 {
		return errors.New("jobs cannot be negative")
	}

	return nil
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}
