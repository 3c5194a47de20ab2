// Package main provides the CLI entry point for labreport.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/canyalcin1/alis-vz/internal/config"
	"github.com/canyalcin1/alis-vz/internal/ingest"
	"github.com/canyalcin1/alis-vz/pkg/labreport"
	"github.com/canyalcin1/alis-vz/pkg/labreport/models"
	"github.com/canyalcin1/alis-vz/pkg/labreport/output"
	"github.com/canyalcin1/alis-vz/pkg/labreport/parser"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	cfgFile      string
	outputPath   string
	pretty       bool
	outFormat    string
	mode         string
	charset      string
	keywordsFile string
	record       bool
	redact       bool
	uploader     string

	cfg *config.Global
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		logger.Error("labreport", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "labreport",
		Short: "Extract structured lab analysis data from report spreadsheets",
		Long: `labreport reads lab analysis report spreadsheets (xlsx or csv) and
outputs samples, sections, parameter values, footnotes and analysis types.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
			applyFlagOverrides(cmd)
			return nil
		},
	}

	gofs := flag.NewFlagSet("labreport", flag.ContinueOnError)
	gofs.Var(&verbose, "v", "logging verbosity")
	rootCmd.PersistentFlags().AddGoFlagSet(gofs)
	addPersistentFlags(rootCmd.PersistentFlags())

	parseCmd := &cobra.Command{
		Use:   "parse [input]",
		Short: "Parse one report file",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	parseCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")

	rootCmd.AddCommand(parseCmd, newBatchCmd(), newConfigCmd())
	return rootCmd
}

func addPersistentFlags(fs *pflag.FlagSet) {
	fs.StringVar(&cfgFile, "config", "", "config file (default is ~/.labreport/config.yaml)")
	fs.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	fs.StringVar(&outFormat, "format", "json", "Output encoding: json, yaml")
	fs.StringVar(&mode, "mode", "standard", "Extraction mode: light, standard")
	fs.StringVar(&charset, "charset", "", "CSV charset name (default: utf-8)")
	fs.StringVar(&keywordsFile, "keywords", "", "YAML keyword table overriding the built-in phrases")
	fs.BoolVar(&record, "record", false, "Output upload records (document, samples, footnotes) instead of the raw result")
	fs.BoolVar(&redact, "redact", false, "Output the restricted view of the upload records (implies --record)")
	fs.StringVar(&uploader, "uploader", "", "Uploader id stored on upload records")
}

// applyFlagOverrides lets explicitly set flags win over the loaded config.
func applyFlagOverrides(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("pretty") {
		cfg.Pretty = pretty
	}
	if f.Changed("format") {
		cfg.Output = outFormat
	}
	if f.Changed("mode") {
		cfg.Mode = mode
	}
	if f.Changed("charset") {
		cfg.Charset = charset
	}
	if f.Changed("keywords") {
		cfg.KeywordsFile = keywordsFile
	}
	if f.Changed("uploader") {
		cfg.Uploader = uploader
	}
}

// extractOptions builds parser options from the effective configuration.
func extractOptions() (labreport.Options, error) {
	opts := labreport.DefaultOptions()
	opts.Format = ""
	opts.Charset = cfg.Charset
	opts.Logger = logger

	switch cfg.Mode {
	case "light":
		opts.Mode = labreport.ModeLight
	case "standard", "":
		opts.Mode = labreport.ModeStandard
	default:
		return opts, fmt.Errorf("invalid mode: %s (must be light or standard)", cfg.Mode)
	}

	if cfg.KeywordsFile != "" {
		kw, err := parser.LoadKeywords(cfg.KeywordsFile)
		if err != nil {
			return opts, err
		}
		opts.Keywords = &kw
	}
	return opts, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	opts, err := extractOptions()
	if err != nil {
		return err
	}

	res, err := labreport.ParseFile(inputPath, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if res.Empty() {
		logger.Warn("no table recognised", "file", inputPath, "title", res.Title)
	}

	data, err := render(inputPath, res)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// render encodes a result, or the upload records built from it.
func render(inputPath string, res *models.ParsedResult) ([]byte, error) {
	if !record && !redact {
		return output.Marshal(cfg.Output, res, cfg.Pretty)
	}
	up := ingest.NewUpload(inputPath, cfg.Uploader, res, time.Now())
	if redact {
		up = ingest.Redact(up)
	}
	logger.Debug("upload records", "document", up.Document.ID, "samples", len(up.Samples))
	return output.Marshal(cfg.Output, up, cfg.Pretty)
}
