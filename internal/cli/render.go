package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorui/pkg/errors"
	"github.com/matzehuels/anchorui/pkg/pipeline"
	"github.com/matzehuels/anchorui/pkg/scene"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path
	formats  string   // comma-separated output formats
	width    float64  // container width
	height   float64  // container height
	resizes  []string // WxH resize steps applied after building
	debug    bool     // enable debug mode on the whole tree
	scale    float64  // PNG scale factor
	detailed bool     // detailed tree diagrams
	noCache  bool     // bypass the artifact cache
	refresh  bool     // rebuild and overwrite cached artifacts
	noImages bool     // skip decoding image sources
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [scene.toml]",
		Short: "Lay out a scene and write it as SVG, HTML, PNG, PDF, JSON or a tree diagram",
		Long: `Lay out a scene at the given container size and write the requested formats.

Resize steps replay container resize notifications in order, so the output
shows the layout after the last one:

  anchorui render hud.toml --width 400 --height 300 --resize 800x600 -f svg,png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.Formats, ", ")+" (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "container width (default from scene or config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "container height (default from scene or config)")
	cmd.Flags().StringSliceVar(&opts.resizes, "resize", nil, "resize step WxH, repeatable")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "render in debug mode")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show boxes and anchors in tree diagrams")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().BoolVar(&opts.noImages, "no-images", false, "do not decode image sources")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, ro renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	opts, err := c.pipelineOptions(cmd, input, ro)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	prog := newProgress(logger)
	spinner := newSpinner(ctx, os.Stderr, "Rendering "+filepath.Base(input))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError(errors.Detail(err))
		return err
	}
	spinner.Stop()
	prog.done("Rendered " + input)

	base := basePath(ro.output, input)
	single := len(opts.Formats) == 1 && ro.output != ""
	printSuccess("Rendered %s", input)
	for _, format := range opts.Formats {
		path := base + "." + pipeline.Extension(format)
		if single {
			path = ro.output
		}
		if err := writeOutput(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(result.Stats.NodeCount, sizeOf(opts), result.CacheInfo.RenderHit)
	return nil
}

// pipelineOptions merges flags over the config file into pipeline options.
// Size flags left unset defer to the scene, then to the config.
func (c *CLI) pipelineOptions(cmd *cobra.Command, input string, ro renderOpts) (pipeline.Options, error) {
	cfg := c.cfg()
	opts := pipeline.Options{
		ScenePath: input,
		Width:     ro.width,
		Height:    ro.height,
		Debug:     ro.debug,
		Formats:   parseFormats(ro.formats),
		Scale:     ro.scale,
		Detailed:  ro.detailed,
		Refresh:   ro.refresh,
		NoImages:  ro.noImages,
		Logger:    c.Logger,
	}
	if len(opts.Formats) == 0 {
		opts.Formats = slices.Clone(cfg.Formats)
	}
	if !ro.noImages {
		opts.Fetcher = c.newFetcher()
	}
	for _, s := range ro.resizes {
		w, h, err := parseSize(s)
		if err != nil {
			return opts, err
		}
		opts.Resizes = append(opts.Resizes, [2]float64{w, h})
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	if !cmd.Flags().Changed("width") && !cmd.Flags().Changed("height") && !sceneSized(opts.Scene) {
		opts.Width, opts.Height = cfg.Width, cfg.Height
	}
	return opts, nil
}

// sizeOf describes the final container size of opts.
func sizeOf(opts pipeline.Options) string {
	if n := len(opts.Resizes); n > 0 {
		return fmt.Sprintf("%gx%g", opts.Resizes[n-1][0], opts.Resizes[n-1][1])
	}
	if opts.Width > 0 && opts.Height > 0 {
		return fmt.Sprintf("%gx%g", opts.Width, opts.Height)
	}
	return ""
}

// parseSize parses "WxH".
func parseSize(s string) (float64, float64, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidSize, "size %q: want WxH", s)
	}
	w, err1 := strconv.ParseFloat(ws, 64)
	h, err2 := strconv.ParseFloat(hs, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidSize, "size %q: want WxH", s)
	}
	if err := errors.ValidateSize(w, h); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := ""
	for _, f := range pipeline.Formats {
		if e := "." + pipeline.Extension(f); strings.HasSuffix(output, e) && len(e) > len(ext) {
			ext = e
		}
	}
	return strings.TrimSuffix(output, ext)
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// loadLayout builds the scene at input for the interactive commands, which
// bypass the artifact cache.
func (c *CLI) loadLayout(ctx context.Context, cmd *cobra.Command, input string, ro renderOpts) (*pipeline.Layout, error) {
	opts, err := c.pipelineOptions(cmd, input, ro)
	if err != nil {
		return nil, err
	}
	return pipeline.Build(ctx, opts)
}

// sceneSized reports whether the scene sets its own container size.
func sceneSized(data []byte) bool {
	s, err := scene.Parse(data)
	return err == nil && s.Width > 0 && s.Height > 0
}
