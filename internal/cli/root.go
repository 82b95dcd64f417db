// Package cli implements the purse command line.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/purse/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:          "purse",
		Short:        "Friends, cards and transfers in your terminal",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/purse/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		listCmd(opts),
		cacheCmd(opts),
		configCmd(opts),
		versionCmd(),
	)
	return cmd
}

func runTUI(opts *globalOptions) error {
	selection := tui.NewSelection()

	a, err := newApp(opts, selection.Selectors())
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("starting purse", "version", Version)

	model := tui.NewModel(a.screens, selection, tui.Options{
		Privileged: a.privileged,
		Theme:      a.cfg.UI.Theme,
		Logger:     a.logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "purse %s\n", Version)
		},
	}
}
