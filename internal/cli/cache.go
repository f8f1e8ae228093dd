package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridshift/pkg/cache"
	"github.com/matzehuels/gridshift/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the plan cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached plans and artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ch, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			defer ch.Close()

			clearer, ok := ch.(cache.Clearer)
			if !ok {
				printInfo("Cache is disabled (backend %s)", c.cfg.Cache.Backend)
				return nil
			}
			n, err := clearer.Clear(ctx)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached entries", n)
			switch c.cfg.Cache.Backend {
			case config.BackendFile:
				printDetail("Directory: %s", c.cfg.Cache.Dir)
			case config.BackendRedis:
				printDetail("Redis: %s (prefix %s)", c.cfg.Cache.Redis.Addr, c.cfg.Cache.Redis.Prefix)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Cache.Backend != config.BackendFile {
				return fmt.Errorf("cache backend %s has no directory", c.cfg.Cache.Backend)
			}
			fmt.Println(c.cfg.Cache.Dir)
			return nil
		},
	}
}
