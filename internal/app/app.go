package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/rbhasinn/personal-assist/internal/assistant"
	"github.com/rbhasinn/personal-assist/internal/config"
	"github.com/rbhasinn/personal-assist/internal/domain"
	"github.com/rbhasinn/personal-assist/internal/scheduler"
	"github.com/rbhasinn/personal-assist/internal/store"
	"github.com/rbhasinn/personal-assist/internal/telegram"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server
	repo    store.Repo
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, httpSrv: srv}, nil
}

func openRepo(ctx context.Context, cfg config.Config, log *zap.Logger) (store.Repo, error) {
	switch cfg.StoreDriver {
	case "sqlite":
		return store.OpenSQLite(ctx, cfg.DBPath)
	case "memory":
		log.Warn("using in-memory store: pending jobs will not survive a restart")
		return store.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting personal-assist",
		zap.String("store", a.cfg.StoreDriver),
		zap.String("http", a.cfg.HTTPAddr),
	)

	repo, err := openRepo(ctx, a.cfg, a.log)
	if err != nil {
		a.log.Error("open store failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("store ready")

	asst := assistant.New(repo, nil, a.log, a.cfg.DefaultTZ, domain.ParseLocale(a.cfg.DefaultLocale))
	sched := scheduler.New(repo, a.log, asst, a.cfg.PollInterval)
	asst.SetJobs(sched)

	router := telegram.NewRouter(a.bot, a.log, asst)
	asst.SetSender(router)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sched.Run(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			if a.repo != nil {
				_ = a.repo.Close()
			}
			return nil

		case upd := <-updCh:
			router.HandleUpdate(ctx, upd)
		}
	}
}
