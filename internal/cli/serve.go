package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorui/internal/server"
)

// serveCommand creates the serve command for the live preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		cfg      server.Config
		noCache  bool
		noImages bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live preview server",
		Long: `Run an HTTP server that keeps built scenes as live sessions.

  curl -X POST --data-binary @hud.toml localhost:7070/sessions
  curl -X POST 'localhost:7070/sessions/<id>/resize?w=1024&h=768'
  curl localhost:7070/sessions/<id>.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.cfg().Listen
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			cfg.Logger = c.Logger
			cfg.Runner = runner
			cfg.NoImages = noImages
			if !noImages {
				cfg.Fetcher = c.newFetcher()
			}

			printSuccess("Preview server on http://%s", addr)
			printNextStep("Create a session", "curl -X POST --data-binary @scene.toml http://"+addr+"/sessions")
			return server.New(cfg).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+defaultListen+")")
	cmd.Flags().IntVar(&cfg.MaxSessions, "max-sessions", server.DefaultMaxSessions, "maximum live sessions")
	cmd.Flags().DurationVar(&cfg.SessionTTL, "session-ttl", server.DefaultSessionTTL, "idle session lifetime")
	cmd.Flags().Int64Var(&cfg.MaxBody, "max-body", server.DefaultMaxBody, "maximum scene size in bytes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&noImages, "no-images", false, "do not decode image sources")

	return cmd
}
