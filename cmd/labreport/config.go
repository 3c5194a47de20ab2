package main

import (
	"fmt"
	"strconv"

	"github.com/canyalcin1/alis-vz/internal/config"
	"github.com/canyalcin1/alis-vz/pkg/labreport/output"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View or set labreport configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := output.ToYAML(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value and save to disk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Start from the stored values so flag overrides are not persisted.
			c, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if err := setConfigValue(c, args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(c, cfgFile); err != nil {
				return err
			}
			cfg = c
			fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
			return nil
		},
	}

	configCmd.AddCommand(showCmd, setCmd)
	return configCmd
}

func setConfigValue(c *config.Global, key, val string) error {
	switch key {
	case "mode":
		switch val {
		case "light", "standard":
			c.Mode = val
		default:
			return fmt.Errorf("invalid mode: %s (use light or standard)", val)
		}
	case "output":
		switch val {
		case output.JSON, output.YAML:
			c.Output = val
		default:
			return fmt.Errorf("invalid output: %s (use json or yaml)", val)
		}
	case "pretty":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for pretty: %w", err)
		}
		c.Pretty = b
	case "charset":
		c.Charset = val
	case "keywords_file":
		c.KeywordsFile = val
	case "batch_concurrency":
		i, err := strconv.Atoi(val)
		if err != nil || i < 1 {
			return fmt.Errorf("invalid int for batch_concurrency: %v", val)
		}
		c.BatchConcurrency = i
	case "parse_timeout_sec":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for parse_timeout_sec: %v", val)
		}
		c.ParseTimeoutSec = i
	case "uploader":
		c.Uploader = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}
