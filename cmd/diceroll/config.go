package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/dicebox/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Write the default configuration",
	Long: `Write the default configuration as YAML. Without a path it goes to
the user config directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def := config.Default()
		if len(args) == 0 {
			path, err := def.Save()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		}
		if err := def.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), args[0])
		return nil
	},
}
