package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chrisdamba/fooddash/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		server := api.NewServer(api.Config{
			Catalog:         a.catalog,
			Carts:           a.carts,
			Orders:          a.orders,
			Metrics:         a.metrics,
			Preferences:     cfg.Preferences,
			LiveTracking:    cfg.Tracking.Live,
			TrackingContext: ctx,
		})

		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           server.Routes(),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Server listening addr=%s", cfg.HTTPAddr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case <-ctx.Done():
		}

		log.Println("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
		a.orders.Wait()
		return nil
	},
}

func init() {
	serveCmd.Flags().String("http-addr", ":8080", "Address for the HTTP API")
	serveCmd.Flags().Bool("live-tracking", false, "Run a background tracker for every placed order")
	if err := viper.BindPFlag("http_addr", serveCmd.Flags().Lookup("http-addr")); err != nil {
		log.Fatalf("bind flag http-addr: %v", err)
	}
	if err := viper.BindPFlag("tracking.live", serveCmd.Flags().Lookup("live-tracking")); err != nil {
		log.Fatalf("bind flag live-tracking: %v", err)
	}
	rootCmd.AddCommand(serveCmd)
}
