package config

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wandb/wandb/timeline/internal/cliutil"
	"github.com/wandb/wandb/timeline/internal/panel"
)

// ValidConfigKeys defines the panel settings that can be set from the CLI.
var ValidConfigKeys = []string{
	"default-preset",
	"reposition-brush",
	"drag-fps",
}

// Fs is the filesystem the panel config is read from and written to.
var Fs = afero.NewOsFs()

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <command>",
		Short: "Panel configuration commands",
		Long:  `Commands for viewing and changing the persisted panel settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newSetCmd(), newShowCmd())

	return cmd
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a panel setting",
		Long:  `Set a panel setting that will be persisted in the panel config file.`,
		Example: heredoc.Doc(`
			# Open with the last 24 hours around the dashboard range
			$ timeline-panel config set default-preset 24h

			# Keep the brush in place when the window changes
			$ timeline-panel config set reposition-brush false

			# Redraw the drag preview at most 60 times a second
			$ timeline-panel config set drag-fps 60
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			if !slices.Contains(ValidConfigKeys, key) {
				return fmt.Errorf("invalid config key: %s. Valid keys are: %v", key, ValidConfigKeys)
			}

			cfg := panel.NewConfigManager(Fs, viper.GetString("panel-config"), nil)

			var err error
			switch key {
			case "default-preset":
				err = cfg.SetDefaultPreset(value)
			case "reposition-brush":
				var on bool
				if on, err = strconv.ParseBool(value); err == nil {
					err = cfg.SetRepositionBrush(on)
				}
			case "drag-fps":
				var fps int
				if fps, err = strconv.Atoi(value); err == nil {
					err = cfg.SetDragFPS(fps)
				}
			}
			if err != nil {
				return fmt.Errorf("failed to set %s: %w", key, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully set %s = %s\n", key, value)
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the panel settings",
		Example: heredoc.Doc(`
			$ timeline-panel config show
			$ timeline-panel config show --format json
			$ timeline-panel config show --template '{{.default_preset}}'
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := panel.NewConfigManager(Fs, viper.GetString("panel-config"), nil)
			return cliutil.HandleOutput(cmd, cfg.Snapshot())
		},
	}

	cliutil.AddOutputFlags(cmd)

	return cmd
}
