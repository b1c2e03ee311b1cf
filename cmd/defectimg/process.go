package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jo-hoe/defectframe/internal/core"
)

// NewProcessCmd creates the process command.
func NewProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [files...]",
		Short: "Write the four PNG variants of each input image",
		Long: `Process decodes each input image and writes <name>_<variant>.png for the
grayscale, red_white, blue_white and framed_yellow_border variants.

A failing input does not stop the others; the command exits non-zero if any
input failed.

Examples:
  defectimg process scratch.png
  defectimg process *.jpg -o out -c 4`,
		Args: cobra.MinimumNArgs(1),
		RunE: runProcessCmd,
	}

	cmd.Flags().StringP("out", "o", ".", "Directory the variants are written to")
	cmd.Flags().IntP("concurrency", "c", runtime.NumCPU(), "Number of images processed in parallel")

	return cmd
}

func runProcessCmd(cmd *cobra.Command, args []string) error {
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	concurrency, err := cmd.Flags().GetInt("concurrency")
	if err != nil {
		return err
	}
	if concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", concurrency)
	}

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pipeline, err := core.NewDefectPipeline()
	if err != nil {
		return err
	}

	written, err := processFiles(cmd.Context(), pipeline, args, outDir, concurrency)
	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return err
}

// processFiles runs the pipeline over every input. Per-file failures are collected
// rather than cancelling the batch.
func processFiles(ctx context.Context, pipeline *core.DefectPipeline, inputs []string, outDir string, concurrency int) ([]string, error) {
	if err := checkOutputNames(inputs); err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		written = make([][]string, len(inputs))
		errs    []error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			paths, err := processFile(pipeline, input, outDir)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Warn("failed to process image", "input", input, "error", err)
				errs = append(errs, fmt.Errorf("%s: %w", input, err))
				return nil
			}
			written[i] = paths
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		errs = append(errs, err)
	}

	var all []string
	for _, paths := range written {
		all = append(all, paths...)
	}
	return all, errors.Join(errs...)
}

func processFile(pipeline *core.DefectPipeline, input, outDir string) ([]string, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	variants, err := pipeline.Run(data)
	if err != nil {
		return nil, err
	}

	base := outputBase(input)
	paths := make([]string, 0, len(core.Roles()))
	for _, role := range core.Roles() {
		payload, err := variants.GetOrError(role)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(outDir, fmt.Sprintf("%s_%s.png", base, role))
		if err := os.WriteFile(path, payload, 0600); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputBase is the file name prefix of an input's variants
func outputBase(input string) string {
	return strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
}

// checkOutputNames rejects inputs that would write to the same variant files
func checkOutputNames(inputs []string) error {
	seen := make(map[string]string, len(inputs))
	for _, input := range inputs {
		base := outputBase(input)
		if first, ok := seen[base]; ok {
			return fmt.Errorf("inputs %s and %s both produce %s_<variant>.png; rename one of them", first, input, base)
		}
		seen[base] = input
	}
	return nil
}
