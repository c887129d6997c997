package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/vcs/internal/config"
	"github.com/raphi011/vcs/internal/log"
	"github.com/raphi011/vcs/internal/output"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage vcs configuration.

Config file: ~/.config/vcs/config.toml (override with VCS_CONFIG)`,
		Example: `  vcs config init      # Create default config
  vcs config show      # Show effective config
  vcs config path      # Print the config file location`,
	}

	cmd.AddCommand(newConfigInitCmd(a))
	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigPathCmd(a))

	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  vcs config init      # Create config
  vcs config init -f   # Overwrite existing config`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(a.configPath, force); err != nil {
				if !force {
					return fmt.Errorf("%w (use -f to overwrite)", err)
				}
				return err
			}
			log.FromContext(cmd.Context()).Printf("Created config file: %s\n", a.configPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")

	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show effective configuration: the config file merged with defaults,
environment overrides and global flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Encode(output.FromContext(cmd.Context()).Writer(), a.cfg)
		},
	}
}

func newConfigPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output.FromContext(cmd.Context()).Println(a.configPath)
			return nil
		},
	}
}
