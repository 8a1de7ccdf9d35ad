package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexbotov/iyzipay-go/internal/auth"
	"github.com/alexbotov/iyzipay-go/internal/sandbox"
)

func (a *app) sandboxCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run a local iyzico sandbox server",
		Long: `Run an in-memory stand-in for the iyzico API.

The sandbox accepts the sandbox api and secret keys from the configuration
and rejects requests whose signatures do not match.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = a.cfg.Sandbox.Port
			}

			keys := auth.StaticKeys{a.cfg.Sandbox.APIKey: a.cfg.Sandbox.SecretKey}
			handler := sandbox.New(keys, a.logger)

			srv := &http.Server{
				Addr:         ":" + port,
				Handler:      handler.SetupRouter(),
				ReadTimeout:  a.cfg.Sandbox.ReadTimeout,
				WriteTimeout: a.cfg.Sandbox.WriteTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("sandbox listening", "addr", srv.Addr, "api_key", a.cfg.Sandbox.APIKey)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			a.logger.Info("shutting down sandbox")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (default from config)")
	return cmd
}
