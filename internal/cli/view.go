package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorui/internal/viewer"
	"github.com/matzehuels/anchorui/pkg/surface"
)

// viewCommand creates the native window viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		opts renderOpts
		fps  int
		bg   string
	)

	cmd := &cobra.Command{
		Use:   "view [scene.toml]",
		Short: "Show a scene in a resizable window",
		Long: `Show a scene in a native window that acts as its container.

Resizing the window relays out the scene. F1 toggles debug mode on the whole
tree, a click toggles it on the node under the cursor, F2 hides that node.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			background, err := surface.ParseColor(bg)
			if err != nil {
				return err
			}
			l, err := c.loadLayout(cmd.Context(), cmd, args[0], opts)
			if err != nil {
				return err
			}
			defer l.Root.Remove()

			return viewer.Run(cmd.Context(), l, viewer.Config{
				Background: background,
				FPS:        fps,
				Logger:     c.Logger,
			})
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", 0, "initial window width (default from scene or config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "initial window height (default from scene or config)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "start in debug mode")
	cmd.Flags().BoolVar(&opts.noImages, "no-images", false, "do not decode image sources")
	cmd.Flags().IntVar(&fps, "fps", 60, "target frame rate")
	cmd.Flags().StringVar(&bg, "background", "#202020", "window background color")

	return cmd
}
