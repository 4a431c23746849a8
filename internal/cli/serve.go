package cli

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/matzehuels/progresstwin/pkg/cache"
	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/interact"
	"github.com/matzehuels/progresstwin/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	redisURL string // publish clicks on this Redis
	channel  string // Redis click channel
	pin      bool   // load the dataset once instead of per request
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [dataset]",
		Short: "Serve scenes, role maps and click forwarding over HTTP",
		Long: `Serve runs the HTTP API:

  GET  /api/structures
  GET  /api/structures/{id}/scene?lang=&format=json|svg|cbor
  GET  /api/structures/{id}/roles
  POST /api/structures/{id}/click   {"primitive_id": "..."}
  GET  /healthz

The dataset is reloaded on every request so edits to the matrix show up
immediately; pass --pin to load it once. Clicks are logged and, with a
Redis URL, published as JSON events.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.datasetArg(args)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), src, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, then :8080)")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "publish click events on this Redis (default: cache redis_url)")
	cmd.Flags().StringVar(&opts.channel, "channel", "", "Redis click channel (default from config)")
	cmd.Flags().BoolVar(&opts.pin, "pin", false, "load the dataset once at startup")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, src string, opts serveOpts) error {
	cfg := c.Config.Server
	if opts.addr == "" {
		opts.addr = cfg.Addr
	}
	if opts.channel == "" {
		opts.channel = cfg.ClickChannel
	}
	if opts.redisURL == "" {
		opts.redisURL = c.Config.Cache.RedisURL
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	srvOpts := server.Options{
		Runner:  runner,
		Source:  src,
		Synth:   c.Config.Synth,
		Handler: interact.LogHandler(c.Logger),
		Logger:  c.Logger,
	}
	if opts.pin {
		d, err := c.loadDataset(ctx, src)
		if err != nil {
			return err
		}
		srvOpts.Dataset = d
	}
	if opts.redisURL != "" {
		client, err := newRedisClient(ctx, opts.redisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		srvOpts.Publisher = interact.NewRedisPublisher(client, opts.channel, c.Logger)
		printDetail("Publishing clicks on %s", opts.channel)
	}

	printInfo("Serving %s on %s", StyleHighlight.Render(src), StyleLink.Render(opts.addr))
	return server.New(srvOpts).ListenAndServe(ctx, opts.addr, cfg.ReadTimeout, cfg.WriteTimeout)
}

// newRedisClient connects to url and pings it.
func newRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if err := errors.ValidateURL(url, "redis", "rediss"); err != nil {
		return nil, err
	}
	ropts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse redis url")
	}
	client := redis.NewClient(ropts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeSource, cache.Retryable(err), "connect to redis")
	}
	return client, nil
}
