package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tannerbroberts/abouttime/pkg/cache"
)

// redisPingTimeout bounds the reachability check in "cache status".
const redisPingTimeout = 3 * time.Second

// cacheCommand groups cache maintenance under one parent command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the computed-result cache",
		Long: `Layout and suggestion results are cached keyed by the library
content hash, so entries go stale naturally when the library changes.
These subcommands inspect and reset that cache.`,
	}

	cmd.AddCommand(c.cacheStatusCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheStatusCommand creates the "cache status" subcommand.
func (c *CLI) cacheStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the cache backend, entry count, and disk usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("resolve cache dir: %w", err)
			}
			entries, size := cacheUsage(dir)

			printKeyValue("Backend", c.Config.Cache.Backend)
			printKeyValue("Directory", dir)
			printKeyValue("Entries", strconv.Itoa(entries))
			printKeyValue("Disk usage", formatBytes(size))

			if c.Config.Cache.Backend == "redis" && c.Config.Cache.RedisURL != "" {
				printKeyValue("Redis", c.redisStatus(cmd.Context()))
			}
			return nil
		},
	}
}

// redisStatus reports whether the configured redis backend answers a ping.
func (c *CLI) redisStatus(ctx context.Context) string {
	rc, err := cache.NewRedisCache(c.Config.Cache.RedisURL)
	if err != nil {
		return "unreachable"
	}
	defer func() { _ = rc.Close() }()

	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		return "unreachable"
	}
	return "ok"
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached layout and suggestion result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("resolve cache dir: %w", err)
			}

			entries, _ := cacheUsage(dir)
			if entries == 0 {
				printInfo("Cache is already empty")
				return nil
			}

			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("recreate cache dir: %w", err)
			}

			printSuccess("Cleared %d cached entries", entries)
			printDetail("Directory: %s", dir)
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
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("resolve cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// cacheUsage totals the files under the cache directory. A missing
// directory counts as an empty cache.
func cacheUsage(dir string) (entries int, size int64) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		entries++
		size += info.Size()
		return nil
	})
	return entries, size
}
