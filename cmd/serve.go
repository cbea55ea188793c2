package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ewintr.nl/captionsbot/config"
	"ewintr.nl/captionsbot/handler"
	"ewintr.nl/captionsbot/model"
	"ewintr.nl/captionsbot/process"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook that relabels issues when their card moves",
	Long: `Listens for the project_card events of the repository on /labellize.
When a card moves to another column, the stage labels of its issue are
updated to match the column.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		secret, err := cfg.Secret(config.WebhookSecret)
		if err != nil {
			return err
		}
		gh, err := newGitHub()
		if err != nil {
			return err
		}
		journal, closeJournal, err := newJournal()
		if err != nil {
			return err
		}
		defer closeJournal()

		labeller := process.NewLabeller(gh, model.DefaultBoard(), journal, gh.Repository(), logger)
		srv := &http.Server{
			Addr:              cfg.Listen,
			Handler:           handler.NewServer(handler.NewWebhookAPI(labeller, secret, logger), logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errc := make(chan error, 1)
		go func() {
			errc <- srv.ListenAndServe()
		}()
		logger.Info("http server started", slog.String("address", cfg.Listen))

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("service stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "Address to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}
