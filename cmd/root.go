/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_behaviors.go to isolate cobra setup from behavior
// initialisation logic.
//
// Design: PersistentPreRunE opens the theme lazily - only commands that
// need templates trigger behavior init. Commands that read their arguments
// or stdin (parse, render, class check) work anywhere. The noThemeCommands
// map controls which commands skip initialisation.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/rain/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rain",
	Short: "Theme templates and behavior composition for October-style sites",
	Long:  `Parse, render and manage Halcyon theme templates stored on disk, in SQLite or both, and inspect the behaviors composing the rain application.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}
		if datasource != "" && !slices.Contains(validDatasources, datasource) {
			return fmt.Errorf("invalid datasource: %s (valid: %v)", datasource, validDatasources)
		}

		if author == "" {
			author = detectAuthor()
		}

		if !noThemeCommands[topLevelCmdName(cmd)] {
			if err := initBehaviors(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return fmt.Errorf("initialise behaviors: %w", err)
			}
		}
		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "rain cat pages/home.htm", returns "cat".
// For "rain class check theme.yaml", returns "class".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, builds the application host, executes the command,
// and closes the theme before exit. Exit code 1 indicates error.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	if err := registerBehaviors(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	err := rootCmd.Execute()

	if themeSvc != nil {
		if closeErr := themeSvc.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing theme: %v\n", closeErr)
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and behavior access.
func RootCmd() *cobra.Command {
	return rootCmd
}
