// Package commands wires the praticoweb CLI: one subcommand per front-end.
package commands

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pratico-web/internal/adminapi"
	"pratico-web/internal/config"
)

var cfgPath string

func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:          "praticoweb",
		Short:        "Web front-ends for the Pratico emoluments service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (YAML)")
	root.AddCommand(adminCmd(), landingCmd())
	return root.ExecuteContext(ctx)
}

func setup() (*config.Config, *logrus.Logger, adminapi.Client, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, nil, err
	}
	log := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	api := adminapi.New(cfg.APIBaseURL, &http.Client{Timeout: 8 * time.Second})
	return cfg, log, api, nil
}

// serve runs an HTTP server until the command context is cancelled.
func serve(ctx context.Context, log logrus.FieldLogger, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
