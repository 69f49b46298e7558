// File: cmd/normalize.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/dimnorm/internal/config"
	"github.com/xkilldash9x/dimnorm/internal/markup"
	"github.com/xkilldash9x/dimnorm/internal/observability"
	"github.com/xkilldash9x/dimnorm/internal/tree"
)

// errStdinTwice is returned when "-" is named more than once.
var errStdinTwice = errors.New("standard input may only be named once")

// newNormalizeCmd creates the `normalize` command. Flags that were set
// explicitly override the config file and environment.
func newNormalizeCmd() *cobra.Command {
	var showStats bool

	normalizeCmd := &cobra.Command{
		Use:   "normalize [file...]",
		Short: "Coerce width and height values in node trees to numbers",
		Long: `Reads one or more documents (JSON node trees, HTML fragments or XML/SVG),
rewrites pixel and bare numeric width/height values as numbers, and writes one
JSON document per input to standard output in argument order.

With no files, or with "-", standard input is read. Files ending in .br are
brotli-decompressed first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ok := cmd.Context().Value(configKey).(config.Interface)
			if !ok {
				return errors.New("configuration was not loaded")
			}
			if err := applyFlagOverrides(cmd, cfg); err != nil {
				return err
			}
			r := &normalizeRun{
				cfg:       cfg,
				inputs:    args,
				stdin:     cmd.InOrStdin(),
				stdout:    cmd.OutOrStdout(),
				showStats: showStats,
				logger:    observability.GetLogger(),
			}
			return r.execute(cmd.Context())
		},
	}

	flags := normalizeCmd.Flags()
	flags.StringP("format", "f", string(markup.FormatAuto), "input format: auto, json, html or xml")
	flags.Bool("indent", false, "indent the JSON output")
	flags.StringSlice("image-tags", tree.DefaultImageTags, "elements whose width/height attributes are coerced")
	flags.Int("concurrency", 4, "number of inputs processed in parallel")
	flags.BoolVar(&showStats, "stats", false, "log per-input normalization counts")
	return normalizeCmd
}

// applyFlagOverrides copies explicitly set flags onto cfg and revalidates it.
func applyFlagOverrides(cmd *cobra.Command, cfg config.Interface) error {
	flags := cmd.Flags()

	if flags.Changed("format") {
		format, err := flags.GetString("format")
		if err != nil {
			return err
		}
		cfg.SetInputFormat(format)
	}
	if flags.Changed("concurrency") {
		n, err := flags.GetInt("concurrency")
		if err != nil {
			return err
		}
		cfg.SetInputConcurrency(n)
	}
	if flags.Changed("indent") {
		indent, err := flags.GetBool("indent")
		if err != nil {
			return err
		}
		cfg.SetOutputIndent(indent)
	}
	if flags.Changed("image-tags") {
		tags, err := flags.GetStringSlice("image-tags")
		if err != nil {
			return err
		}
		cfg.SetNormalizeImageTags(tags)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// normalizeRun holds everything one invocation of `normalize` needs.
type normalizeRun struct {
	cfg       config.Interface
	inputs    []string
	stdin     io.Reader
	stdout    io.Writer
	showStats bool
	logger    *zap.Logger
}

func (r *normalizeRun) execute(ctx context.Context) error {
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	inputs := r.inputs
	if len(inputs) == 0 {
		inputs = []string{markup.StdinName}
	}
	if err := checkStdinOnce(inputs); err != nil {
		return err
	}

	format, err := markup.ParseFormat(r.cfg.Input().Format)
	if err != nil {
		return err
	}

	logger := r.logger.With(zap.String("run_id", uuid.New().String()))
	dec := markup.NewDecoder(logger)
	norm := tree.New(tree.WithImageTags(r.cfg.Normalize().ImageTags...))

	logger.Debug("Normalizing inputs",
		zap.Strings("inputs", inputs),
		zap.String("format", string(format)),
		zap.Int("concurrency", r.cfg.Input().Concurrency),
	)

	results := make([]any, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Input().Concurrency)

	for i, name := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := r.decode(dec, name, format)
			if err != nil {
				return err
			}

			out, stats := norm.Run(doc)
			results[i] = out
			if r.showStats {
				logger.Info("Normalized input",
					zap.String("input", name),
					zap.Int("visited", stats.Visited),
					zap.Int("coerced", stats.Coerced),
					zap.Int("kept", stats.Kept),
				)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// A cancellation that raced the last worker still aborts before output.
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, out := range results {
		if err := markup.Encode(r.stdout, out, r.cfg.Output().Indent); err != nil {
			return err
		}
	}
	logger.Debug("Normalization complete", zap.Int("documents", len(results)))
	return nil
}

// decode reads stdin through the command's reader so it can be redirected.
func (r *normalizeRun) decode(dec *markup.Decoder, name string, format markup.Format) (any, error) {
	if name != markup.StdinName {
		return dec.DecodeFile(name, format)
	}
	doc, err := dec.Decode(r.stdin, format)
	if err != nil {
		return nil, fmt.Errorf("stdin: %w", err)
	}
	return doc, nil
}

func checkStdinOnce(inputs []string) error {
	seen := false
	for _, in := range inputs {
		if in != markup.StdinName {
			continue
		}
		if seen {
			return errStdinTwice
		}
		seen = true
	}
	return nil
}
