package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/scheduledevents/internal/config"
	"github.com/muurk/scheduledevents/internal/ui"
)

// configCmd groups the configuration file commands
func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(opts), newConfigShowCmd(opts))
	return cmd
}

func newConfigInitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default settings",
		Example: `  # Create the default config file
  scheduledevents config init

  # Overwrite an existing file
  scheduledevents config init --force --config ./scheduledevents.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			path := opts.configPath
			if path == "" {
				p, err := config.GetConfigPath()
				if err != nil {
					return err
				}
				path = p
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}

			if err := config.Default().Save(path); err != nil {
				return err
			}

			ui.PrintResult(cmd.OutOrStdout(), ui.NewSuccessResult("Configuration written").
				AddDetail("Path", path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying the config file and flags.

Discovered endpoints are never written to the configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if opts.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), opts.cfg)
			}
			data, err := yaml.Marshal(opts.cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
