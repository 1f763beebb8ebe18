package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rezmoss/standupclock/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := loadConfig()
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(m.Settings())
		if err != nil {
			return fmt.Errorf("encoding settings: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and write the config file",
	Example: `  standupclock config set schedule.time 09:15
  standupclock config set schedule.overrides.wed 11:00
  standupclock config set display.locale en`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := loadConfig()
		if err != nil {
			return err
		}
		if err := m.Set(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := config.Open(configPath)
		if err != nil {
			return err
		}
		suffix := ""
		if !m.Exists() {
			suffix = " (not created yet)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", m.Path(), suffix)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}
