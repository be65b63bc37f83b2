// Package serve runs the statement webhook
package serve

import (
	"os"
	"os/signal"
	"syscall"

	"jose/statement-ingest/cmd/root"
	"jose/statement-ingest/internal/container"
	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/webhook"

	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the statement webhook",
	Long: `Serve listens for POST /webhook/statement requests carrying {text, secret} and
imports the text for the configured webhook user (JOSE_WEBHOOK_USER_ID).`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from webhook.addr)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	cfg := root.AppConfig
	if addr != "" {
		cfg.Webhook.Addr = addr
	}
	if err := cfg.ValidateWebhook(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close container")
		}
	}()

	root.Log.Info("Starting webhook",
		logging.Field{Key: "addr", Value: cfg.Webhook.Addr},
		logging.Field{Key: logging.FieldUserID, Value: cfg.Webhook.UserID})

	srv := webhook.NewServer(cfg.Webhook.Addr, c.GetProcessor(), c.GetStore(), cfg.Webhook.Secret, cfg.Webhook.UserID, c.GetLogger())
	return srv.Run(ctx)
}
