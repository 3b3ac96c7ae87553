package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/az104/internal/api"
	"github.com/abhisek/az104/internal/session"
)

const defaultHTTPAddr = "127.0.0.1:8104"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz over a local JSON API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides AZ104_HTTP_ADDR, default "+defaultHTTPAddr+")")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))

	e, err := openEnv(cmd, logger)
	if err != nil {
		return err
	}
	defer e.Close()

	ctrl, err := newController(cmd, e, newGenerator(ctx, e.events, logger))
	if err != nil {
		return err
	}
	ctrl.Resume(ctx)

	loop := session.NewLoop(ctrl, time.Second, logger)
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = loop.Run(ctx)
	}()

	srv := &http.Server{
		Addr: serveAddr(cmd),
		Handler: api.NewHandler(loop, api.Options{
			AllowedOrigins: corsOrigins(),
			Logger:         logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		stop()
		<-loopDone
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)

	<-loopDone
	loop.Wait()
	return err
}

func serveAddr(cmd *cobra.Command) string {
	if a, _ := cmd.Flags().GetString("addr"); a != "" {
		return a
	}
	if a := strings.TrimSpace(os.Getenv("AZ104_HTTP_ADDR")); a != "" {
		return a
	}
	return defaultHTTPAddr
}

// corsOrigins reads AZ104_CORS_ORIGINS as a comma-separated list.
func corsOrigins() []string {
	var out []string
	for _, o := range strings.Split(os.Getenv("AZ104_CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
