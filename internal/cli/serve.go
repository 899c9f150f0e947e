package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tikzlayout/internal/server"
	"github.com/matzehuels/tikzlayout/pkg/cache"
	"github.com/matzehuels/tikzlayout/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, redisAddr, baseDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline over HTTP",
		Long: `Serve starts the HTTP render service:

  POST /render?format=tex|pdf|json   render the scene in the request body
  GET  /renders/{id}                 fetch an earlier render
  GET  /health                       liveness and version

Artifacts are cached in Redis when an address is configured, otherwise in
the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}
			if cmd.Flags().Changed("redis") {
				c.Config.Server.RedisAddr = redisAddr
			}
			return c.runServe(cmd, baseDir)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the shared artifact cache")
	cmd.Flags().StringVar(&baseDir, "base-dir", ".", "directory that scene image paths are resolved against")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, baseDir string) error {
	ctx := cmd.Context()
	cfg := c.Config.Server

	runner, backend, err := c.newServerRunner(cmd)
	if err != nil {
		return err
	}
	defer runner.Close()

	printInfo("Starting %s %s", appName, StyleHighlight.Render("serve"))
	printKeyValue("Address", cfg.Addr)
	printKeyValue("Cache", backend)
	printKeyValue("Engine", c.Config.Render.Engine)

	srv := server.New(runner, server.Options{
		Addr:         cfg.Addr,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Engine:       c.Config.Render.Engine,
		BaseDir:      baseDir,
		ProbeImages:  c.Config.Render.ProbeImages,
	}, c.Logger)
	return srv.ListenAndServe(ctx)
}

// newServerRunner picks the artifact store for the service and describes it.
func (c *CLI) newServerRunner(cmd *cobra.Command) (*pipeline.Runner, string, error) {
	cfg := c.Config.Server
	if cfg.RedisAddr == "" {
		runner, err := c.newRunner(false)
		if err != nil {
			return nil, "", err
		}
		return runner, "file " + c.cacheDir(), nil
	}

	rc, err := cache.NewRedisCache(cmd.Context(), cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, "", err
	}
	c.installHooks()
	keyer := cache.NewScopedKeyer(nil, cfg.KeyPrefix)
	runner := pipeline.NewRunner(rc, keyer, c.Logger)
	runner.TTL = c.Config.Cache.TTL
	return runner, "redis " + cfg.RedisAddr, nil
}
