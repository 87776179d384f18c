package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xvierd/vcprompt/internal/config"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print every configuration key with its effective value after the config
file and VCP_* environment variables have been applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := appConfig.Settings()
		keys := make([]string, 0, len(settings))
		for key := range settings {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		out := cmd.OutOrStdout()
		for _, key := range keys {
			fmt.Fprintf(out, "%s = %s\n", key, strconv.Quote(settings[key]))
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long:  `Write the default configuration as TOML to the config path so it can be edited.`,
	// The file may not exist yet, so skip loading it.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			path, err = config.GetConfigPath()
			if err != nil {
				return err
			}
		}

		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}

		if err := config.Save(config.DefaultConfig(), path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}
