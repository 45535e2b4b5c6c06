package app

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"weather-notify/internal/domain/ports"
	"weather-notify/internal/usecase"
)

// Options configures the App.
type Options struct {
	Schedule string
	// MetricsAddr enables the HTTP listener serving /metrics, /healthz and
	// POST /notification when set.
	MetricsAddr    string
	MetricsHandler http.Handler
}

// App manages the lifecycle of the weather broadcast scheduler.
type App struct {
	cron      *cron.Cron
	broadcast *usecase.WeatherBroadcast
	logger    ports.Logger
	opts      Options
}

// New constructs an App instance.
func New(broadcast *usecase.WeatherBroadcast, logger ports.Logger, opts Options) *App {
	return &App{
		cron:      cron.New(),
		broadcast: broadcast,
		logger:    logger,
		opts:      opts,
	}
}

// Run broadcasts once immediately and then according to the cron schedule.
func (a *App) Run(ctx context.Context) error {
	if err := a.scheduleJob(ctx); err != nil {
		return err
	}

	server := a.httpServer()
	if server != nil {
		go func() {
			a.logger.Info(ctx, "http listening", "addr", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error(ctx, "http server failed", "error", err)
			}
		}()
	}

	a.logger.Info(ctx, "running first weather broadcast immediately")
	if err := a.broadcast.Run(ctx); err != nil {
		a.logger.Error(ctx, "initial weather broadcast failed", "error", err)
	}

	a.logger.Info(ctx, "starting scheduler", "cron", a.opts.Schedule)
	a.cron.Start()

	<-ctx.Done()
	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}
	a.logger.Info(context.Background(), "scheduler stopped")
	return nil
}

// scheduleJob registers the broadcast; runs are cancelled when parent is.
func (a *App) scheduleJob(parent context.Context) error {
	_, err := a.cron.AddFunc(a.opts.Schedule, func() {
		ctx, cancel := context.WithTimeout(parent, 2*time.Minute)
		defer cancel()
		if err := a.broadcast.Run(ctx); err != nil {
			a.logger.Error(ctx, "scheduled weather broadcast failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	return nil
}

func (a *App) httpServer() *http.Server {
	if a.opts.MetricsAddr == "" {
		return nil
	}
	mux := http.NewServeMux()
	if a.opts.MetricsHandler != nil {
		mux.Handle("/metrics", a.opts.MetricsHandler)
	}
	mux.HandleFunc("POST /notification", a.handleNotification)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &http.Server{Addr: a.opts.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}

// handleNotification switches the weather notification on or off, e.g.
// POST /notification?enabled=false, and rebroadcasts to the skins.
func (a *App) handleNotification(w http.ResponseWriter, r *http.Request) {
	enabled, err := strconv.ParseBool(r.URL.Query().Get("enabled"))
	if err != nil {
		http.Error(w, "enabled must be true or false", http.StatusBadRequest)
		return
	}

	if err := a.broadcast.SetEnabled(r.Context(), enabled); err != nil {
		a.logger.Error(r.Context(), "notification toggle broadcast failed", "enabled", enabled, "error", err)
		http.Error(w, "broadcast failed", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
