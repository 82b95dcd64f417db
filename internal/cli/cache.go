package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmcdole/purse/internal/adapter"
	"github.com/mmcdole/purse/internal/adapter/source"
	"github.com/mmcdole/purse/internal/domain"
	"github.com/mmcdole/purse/internal/store"
)

func cacheCmd(opts *globalOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the offline friends cache",
	}

	c.AddCommand(cacheInfoCmd(opts), cacheClearCmd(opts))
	return c
}

func cacheInfoCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show what the friends cache holds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			dir := cfg.CacheDir()
			if dir == "" {
				fmt.Fprintln(out, "cache is memory only")
				return nil
			}

			clients, err := source.NewClients(cfg, adapter.NullLogger())
			if err != nil {
				return err
			}
			fs, err := store.NewFriendsStore(dir, clients.URL)
			if err != nil {
				return err
			}
			defer fs.Close()

			fmt.Fprintf(out, "location: %s\n", store.CacheDir(dir, clients.URL))

			friends, err := fs.Load(context.Background())
			if errors.Is(err, domain.ErrCacheEmpty) {
				fmt.Fprintln(out, "friends:  (empty)")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "friends:  %d\n", len(friends))
			if savedAt, ok := fs.SavedAt(); ok {
				fmt.Fprintf(out, "saved:    %s\n", savedAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

func cacheClearCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if err := cfg.ClearCache(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	}
}
