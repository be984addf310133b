package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"notedeck/internal/fakeservice"
	"notedeck/internal/logging"
	"notedeck/internal/types"
)

const shutdownTimeout = 5 * time.Second

type serveFunc func(ctx context.Context, addr string, handler http.Handler, logger logging.Logger) error

func newFakeServiceCommand(state *cliState) *cobra.Command {
	var addr string
	var seed int
	cmd := &cobra.Command{
		Use:   "fake-service",
		Short: "Run an in-memory notes service for demos",
		Long:  "fake-service serves the notes collection contract from memory at the address and path of the configured base URL.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := url.Parse(state.cfg.BaseURL())
			if err != nil {
				return state.fail("fake-service", err)
			}
			if strings.TrimSpace(addr) == "" {
				addr = base.Host
			}
			service := fakeservice.New(
				fakeservice.WithPrefix(base.Path),
				fakeservice.WithLogger(state.logger),
			)
			if seed > 0 {
				service.Seed(sampleDrafts(seed)...)
			}
			fmt.Fprintf(state.wiring.stdout, "serving notes on http://%s%s/\n", addr, service.Prefix())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return state.fail("fake-service", state.wiring.serve(ctx, addr, service.Handler(), state.logger))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: host of --base-url)")
	cmd.Flags().IntVar(&seed, "seed", 0, "number of sample notes to start with")
	return cmd
}

func sampleDrafts(n int) []types.NoteDraft {
	drafts := make([]types.NoteDraft, 0, n)
	for i := 1; i <= n; i++ {
		drafts = append(drafts, types.NoteDraft{
			Title:   fmt.Sprintf("Sample note %d", i),
			Content: fmt.Sprintf("Body of sample note %d.\n\n- edit me\n- or delete me", i),
		})
	}
	return drafts
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler, logger logging.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("fake service listening", logging.F("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
