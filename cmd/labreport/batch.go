package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/canyalcin1/alis-vz/pkg/labreport"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	batchOutDir      string
	batchConcurrency int
	batchTimeoutSec  int
)

// batchResult is the outcome for one input file.
type batchResult struct {
	Path    string
	Output  string
	Samples int
	Err     error
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <files...>",
		Short: "Parse several report files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBatch,
	}
	cmd.Flags().StringVar(&batchOutDir, "out-dir", "", "Directory for per-file output (default: next to each input)")
	cmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Files parsed in parallel (overrides config)")
	cmd.Flags().IntVar(&batchTimeoutSec, "timeout", 0, "Per-file parse timeout in seconds (overrides config)")
	return cmd
}

// expandInputs resolves globs, drops duplicates and sorts the result.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path; a missing file is reported by the parser
			matches = []string{arg}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func runBatch(cmd *cobra.Command, args []string) error {
	files := expandInputs(args)
	if len(files) == 0 {
		return fmt.Errorf("no input files matched")
	}

	if cmd.Flags().Changed("concurrency") && batchConcurrency > 0 {
		cfg.BatchConcurrency = batchConcurrency
	}
	if cmd.Flags().Changed("timeout") && batchTimeoutSec > 0 {
		cfg.ParseTimeoutSec = batchTimeoutSec
	}
	if batchOutDir != "" {
		if err := os.MkdirAll(batchOutDir, 0755); err != nil {
			return err
		}
	}

	opts, err := extractOptions()
	if err != nil {
		return err
	}

	results := make([]batchResult, len(files))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.BatchConcurrency)
	for i, path := range files {
		g.Go(func() error {
			r := parseOne(ctx, path, opts)
			mu.Lock()
			results[i] = r
			mu.Unlock()
			if r.Err != nil {
				logger.Error("parse failed", "file", path, "error", r.Err)
			} else {
				logger.Info("parsed", "file", path, "samples", r.Samples, "output", r.Output)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var failed []string
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Path)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d parsed, %d failed\n", len(files)-len(failed), len(failed))
	if len(failed) > 0 {
		return fmt.Errorf("%d file(s) failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

// parseOne parses a single file under the configured timeout and writes its
// output file.
func parseOne(ctx context.Context, path string, opts labreport.Options) batchResult {
	r := batchResult{Path: path}

	format, err := labreport.FormatFromPath(path)
	if err != nil {
		r.Err = err
		return r
	}
	opts.Format = format

	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("%w: %s", labreport.ErrFileNotFound, path)
		}
		r.Err = err
		return r
	}

	if cfg.ParseTimeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.ParseTimeoutSec)*time.Second)
		defer cancel()
	}
	res, err := labreport.ParseContext(ctx, buf, opts)
	if err != nil {
		r.Err = err
		return r
	}
	r.Samples = len(res.Samples)
	if res.Empty() {
		logger.Warn("no table recognised", "file", path)
	}

	data, err := render(path, res)
	if err != nil {
		r.Err = err
		return r
	}

	ext := "." + cfg.Output
	if cfg.Output == "" {
		ext = ".json"
	}
	dir := filepath.Dir(path)
	if batchOutDir != "" {
		dir = batchOutDir
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	r.Output = filepath.Join(dir, base+ext)
	if err := os.WriteFile(r.Output, data, 0644); err != nil {
		r.Err = fmt.Errorf("failed to write output: %w", err)
	}
	return r
}
