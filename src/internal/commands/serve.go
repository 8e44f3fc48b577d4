package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maksimkurb/ztproxy/src/internal/api"
	"github.com/maksimkurb/ztproxy/src/internal/config"
	"github.com/maksimkurb/ztproxy/src/internal/domain"
	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
	"github.com/maksimkurb/ztproxy/src/internal/log"
)

const shutdownTimeout = 10 * time.Second

// CreateServeCommand creates the command running the local proxy API.
func CreateServeCommand() *ServeCommand {
	c := &ServeCommand{
		fs: flag.NewFlagSet("serve", flag.ContinueOnError),
	}
	c.fs.StringVar(&c.listen, "listen", "", "Address to bind the proxy API (default from config, 127.0.0.1:9994)")
	return c
}

// ServeCommand runs the proxy API server until interrupted.
type ServeCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	cfg  *config.Config
	deps *domain.AppDependencies

	listen       string
	configHasher *config.ConfigHasher
}

func (c *ServeCommand) Name() string {
	return c.fs.Name()
}

func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := parseFlags(c.fs, args); err != nil {
		return err
	}

	cfg, err := loadConfigOrFail(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg

	// Flag wins over the config value
	if c.listen == "" {
		c.listen = cfg.API.Listen
	}

	if c.deps, err = buildDependencies(ctx, cfg, true); err != nil {
		return err
	}

	// Remember the configuration the server starts with, so /health can
	// report edits made while it runs.
	c.configHasher = config.NewConfigHasher(cfg.GetConfigPath())
	hash, err := c.configHasher.UpdateCurrentConfigHash()
	if err != nil {
		return zterrors.NewInternalError("failed to hash configuration", err)
	}
	c.configHasher.SetActiveConfigHash(hash)

	return nil
}

// Run listens on the configured address and serves until SIGINT or SIGTERM.
func (c *ServeCommand) Run() error {
	ln, err := net.Listen("tcp", c.listen)
	if err != nil {
		return zterrors.NewConfigError(fmt.Sprintf("failed to listen on %s", c.listen), err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.Serve(ctx, ln)
}

// Serve serves the proxy API on ln until ctx is done, then shuts down
// gracefully.
func (c *ServeCommand) Serve(ctx context.Context, ln net.Listener) error {
	router := api.NewRouter(c.deps, api.RouterOptions{
		LocalOnly:    c.cfg.API.LocalOnly,
		ConfigHasher: c.configHasher,
		Version:      c.ctx.Version,
	})

	server := &http.Server{
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*c.cfg.Controller.Timeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Infof("Starting ztproxy API server on http://%s", ln.Addr())
	log.Infof("Controller: %s", c.cfg.Controller.URL)
	if c.cfg.API.LocalOnly {
		log.Infof("Access restricted to loopback and private networks")
	} else {
		log.Warnf("local_only is disabled: any client that can reach %s can manage the controller", ln.Addr())
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zterrors.NewInternalError("server error", err)
		}
		return nil

	case <-ctx.Done():
		log.Infof("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return zterrors.NewInternalError("graceful shutdown failed", err)
	}

	log.Infof("Server stopped")
	return nil
}
