package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorui/pkg/cache"
	"github.com/matzehuels/anchorui/pkg/httputil"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact and image caches",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var images bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cached render artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			fc, err := cache.NewFileCache(filepath.Join(dir, "artifacts"))
			if err != nil {
				return err
			}
			n, err := fc.Clear()
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached artifacts", n)
			printDetail("Directory: %s", fc.Dir())

			if images {
				hc, err := httputil.NewCache(filepath.Join(dir, "images"), imageTTL)
				if err != nil {
					return err
				}
				n, err := hc.Clear()
				if err != nil {
					return err
				}
				printSuccess("Cleared %d cached images", n)
				printDetail("Directory: %s", hc.Dir())
			}
			if c.cfg().Cache == cacheRedis {
				printWarning("Redis entries expire on their own and were not touched")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&images, "images", false, "also clear downloaded images")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			printKeyValue("artifacts", filepath.Join(dir, "artifacts"))
			printKeyValue("images", filepath.Join(dir, "images"))
			if cfg := c.cfg(); cfg.Path != "" {
				printKeyValue("config", cfg.Path)
			}
			return nil
		},
	}
}
