package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Adda-Baaj/khobor/internal/logger"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// setGinMode applies the configured mode, defaulting to release.
func setGinMode(mode string) {
	switch mode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, name string, log logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.InfoObj(name+" listening", "listen", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("%s listen: %w", name, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.InfoObj(name+" shutting down", "reason", ctx.Err().Error())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s shutdown: %w", name, err)
	}
	return nil
}
