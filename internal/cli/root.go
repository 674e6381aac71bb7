// Package cli implements the chart-segmenter command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/chart-segmenter/internal/config"
	"github.com/ironsheep/chart-segmenter/internal/detection"
	"github.com/ironsheep/chart-segmenter/internal/imaging"
	"github.com/ironsheep/chart-segmenter/internal/logging"
	"github.com/ironsheep/chart-segmenter/internal/pipeline"
	"github.com/ironsheep/chart-segmenter/internal/segment"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// BuildInfo is the version information set by ldflags in main.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// app carries state prepared by the root command for its subcommands.
type app struct {
	build      BuildInfo
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
	pipe       *pipeline.Pipeline
	stdout     io.Writer
	stderr     io.Writer
}

// userError marks failures caused by input rather than the system.
type userError struct{ err error }

func (e userError) Error() string { return e.err.Error() }
func (e userError) Unwrap() error { return e.err }

// NewRootCmd creates the top-level "chart-segmenter" command with global
// flags and all subcommands registered.
func NewRootCmd(build BuildInfo, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		build:  build,
		v:      config.New(),
		stdout: stdout,
		stderr: stderr,
	}

	root := &cobra.Command{
		Use:   "chart-segmenter",
		Short: "Split chart screenshots into date, graph and label images",
		Long: "chart-segmenter cuts a chart capture (date stamp, plot and x-axis labels\n" +
			"stacked vertically) into three images using contour geometry only.",
		Version:       build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: ./"+config.DefaultConfigFile+" if present)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("output-dir", "output", "directory for region images")
	pf.Bool("debug-overlay", false, "also write debug.png with regions outlined")
	pf.Bool("invert", false, "treat dark pixels as foreground")
	pf.Float64("contrast", 0, "contrast change before binarization, in [-1,1]")
	pf.Bool("three-way", true, "split the graph region into graph and label")
	pf.Int("top-depth", 1, "contour depth of the date/graph panels")
	pf.Int("top-k", 3, "keep only the K largest panels (0 = all)")
	pf.Int("top-threshold", 0, "binarization threshold for the full image (0 = automatic)")
	pf.Int("sub-depth", 2, "contour depth of plot and label shapes inside the graph crop")
	pf.Int("sub-threshold", 200, "binarization threshold for the graph crop (0 = automatic)")

	bindings := map[string]string{
		config.KeyLogLevel:     "log-level",
		config.KeyOutputDir:    "output-dir",
		config.KeyDebugOverlay: "debug-overlay",
		config.KeyInvert:       "invert",
		config.KeyContrast:     "contrast",
		config.KeyThreeWay:     "three-way",
		config.KeyTopDepth:     "top-depth",
		config.KeyTopK:         "top-k",
		config.KeyTopThreshold: "top-threshold",
		config.KeySubDepth:     "sub-depth",
		config.KeySubThreshold: "sub-threshold",
	}
	for key, flag := range bindings {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(newSplitCmd(a))
	root.AddCommand(newBatchCmd(a))
	root.AddCommand(newContoursCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newVersionCmd(a))

	return root
}

// setup loads configuration and builds the logger and pipeline.
func (a *app) setup() error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return userError{err}
	}

	levelName := cfg.LogLevel
	if env := os.Getenv(logging.EnvLogLevel); env != "" {
		levelName = env
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return userError{err}
	}

	a.cfg = cfg
	a.logger = logging.New(a.stderr, level)
	a.logger.Debug("configuration loaded",
		"config_file", config.ConfigFileUsed(a.v),
		"version", a.build.Version,
		"segment", cfg.Segment(),
	)

	seg, err := segment.New(cfg.Segment(),
		segment.WithLogger(a.logger),
		segment.WithFinder(detection.DefaultFinder()),
	)
	if err != nil {
		return userError{err}
	}
	a.pipe = pipeline.New(seg, imaging.NewImageCache(), a.logger)
	return nil
}

func (a *app) options() pipeline.Options {
	return pipeline.Options{
		OutputDir:    a.cfg.OutputDir,
		DebugOverlay: a.cfg.DebugOverlay,
	}
}

// Execute runs the CLI and returns the process exit code.
func Execute(build BuildInfo) int {
	root := NewRootCmd(build, os.Stdout, os.Stderr)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	return exitCode(err)
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	var ue userError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &ue),
		errors.Is(err, imaging.ErrImageNotFound),
		errors.Is(err, segment.ErrInsufficientCandidates),
		errors.Is(err, segment.ErrAmbiguousClassification),
		errors.Is(err, detection.ErrCorruptHierarchy):
		return exitUserError
	default:
		return exitSysError
	}
}
