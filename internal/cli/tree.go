package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorui/pkg/errors"
	"github.com/matzehuels/anchorui/pkg/render/treegraph"
)

// treeCommand creates the node tree diagram command.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		opts   renderOpts
		format string
		node   string
	)

	cmd := &cobra.Command{
		Use:   "tree [scene.toml]",
		Short: "Draw the node tree of a scene with Graphviz",
		Long: `Draw the node tree of a scene. DOT goes to stdout unless --output is set;
svg, png and pdf need an output file.

  anchorui tree hud.toml --detailed -f svg -o hud.tree.svg
  anchorui tree hud.toml --node panel | dot -Tpng > panel.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l, err := c.loadLayout(ctx, cmd, args[0], opts)
			if err != nil {
				return err
			}
			defer l.Root.Remove()

			n, err := l.Node(node)
			if err != nil {
				return err
			}
			dot := treegraph.ToDOT(n, treegraph.Options{Detailed: opts.detailed})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = treegraph.RenderSVG(ctx, dot)
			case "png":
				data, err = treegraph.RenderPNG(ctx, dot, opts.scale)
			case "pdf":
				data, err = treegraph.RenderPDF(ctx, dot)
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "tree format %q: want dot, svg, png or pdf", format)
			}
			if err != nil {
				return err
			}

			if opts.output == "" {
				if format != "dot" {
					return errors.New(errors.ErrCodeInvalidInput, "%s output needs --output", format)
				}
				_, err := fmt.Fprint(os.Stdout, dot)
				return err
			}
			if err := writeOutput(opts.output, data); err != nil {
				return err
			}
			printSuccess("Tree of %s", args[0])
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout for dot)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, png, pdf")
	cmd.Flags().StringVar(&node, "node", "", "subtree root by label or id (default the root)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show boxes, anchors and offsets")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2, "PNG scale factor")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "container width (default from scene or config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "container height (default from scene or config)")
	cmd.Flags().StringSliceVar(&opts.resizes, "resize", nil, "resize step WxH, repeatable")
	cmd.Flags().BoolVar(&opts.noImages, "no-images", true, "do not decode image sources")

	return cmd
}
