package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ironsheep/chart-segmenter/internal/pipeline"
	"github.com/ironsheep/chart-segmenter/internal/server"
)

// requireFiles validates that at least min arguments were given and every
// one names an existing regular file.
func requireFiles(min int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < min {
			return userError{errors.New("no filename given")}
		}
		for _, path := range args {
			info, err := os.Stat(path)
			if errors.Is(err, fs.ErrNotExist) {
				return userError{fmt.Errorf("file not found: %s", path)}
			}
			if err != nil {
				return userError{err}
			}
			if info.IsDir() {
				return userError{fmt.Errorf("%s is a directory", path)}
			}
		}
		return nil
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newSplitCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "split <image>",
		Short: "Split one chart screenshot into date, graph and label images",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return userError{fmt.Errorf("expected one image, got %d", len(args))}
			}
			return requireFiles(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipe.Run(cmd.Context(), args[0], a.options())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(a.stdout, res)
			}
			for _, name := range []string{"date", "graph", "label", "debug"} {
				if path, ok := res.Outputs[name]; ok {
					fmt.Fprintf(a.stdout, "%-6s %s\n", name, path)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch <image>...",
		Short: "Split many screenshots concurrently, one output directory per image",
		Args:  requireFiles(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Workers
			}
			items := a.pipe.RunBatch(cmd.Context(), args, a.options(), workers)
			if err := writeJSON(a.stdout, items); err != nil {
				return err
			}
			if failed := pipeline.Failed(items); failed > 0 {
				return userError{fmt.Errorf("%d of %d images failed", failed, len(items))}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent images (0 = number of CPUs)")
	return cmd
}

func newContoursCmd(a *app) *cobra.Command {
	var (
		depth int
		stage string
	)

	cmd := &cobra.Command{
		Use:   "contours <image>",
		Short: "Print the contour forest of an image as JSON",
		Args:  requireFiles(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := a.pipe.Cache().Load(args[0])
			if err != nil {
				return err
			}
			report, err := a.pipe.Contours(img, pipeline.Stage(stage), depth)
			if err != nil {
				return userError{err}
			}
			return writeJSON(a.stdout, report)
		},
	}
	cmd.Flags().IntVar(&depth, "depth", -1, "only list contours at this depth (-1 = all)")
	cmd.Flags().StringVar(&stage, "stage", string(pipeline.StageTop), "binarization settings: top or sub")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server.Version = a.build.Version
			srv, err := server.New(a.pipe, a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			a.logger.Debug("mcp server starting",
				"version", a.build.Version,
				"build_time", a.build.BuildTime,
				"commit", a.build.GitCommit,
			)
			return srv.Run(ctx)
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "chart-segmenter %s\n", a.build.Version)
			fmt.Fprintf(a.stdout, "  Build time: %s\n", a.build.BuildTime)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", a.build.GitCommit)
		},
	}
}
