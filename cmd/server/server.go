package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"innovation-hub/config"
	"innovation-hub/internal/app"
	"innovation-hub/internal/global/database"
	"innovation-hub/internal/global/httpclient"
	"innovation-hub/internal/global/jwt"
	"innovation-hub/internal/global/logger"
	"innovation-hub/internal/global/metrics"
	"innovation-hub/internal/global/middleware"
	internalOtel "innovation-hub/internal/global/otel"
	"innovation-hub/internal/global/sentry"
	"innovation-hub/internal/identity"
	"innovation-hub/internal/module"
	"innovation-hub/internal/store"
	"innovation-hub/internal/store/gormstore"
	"innovation-hub/internal/store/memory"
	"innovation-hub/tools"
)

var (
	log  *slog.Logger
	deps *app.Deps
)

func Init() {
	config.Init()
	cfg := config.Get()
	log = logger.New("Server")

	if err := sentry.Init(); err != nil {
		log.Warn("Sentry 初始化失败，继续运行", "error", err)
	}

	httpclient.Init()

	if cfg.OTel.Enable {
		log.Info("OTel Enabled")
		internalOtel.Init()
	}

	st, err := openStore(cfg)
	tools.PanicOnErr(err)

	auth, err := newAuthenticator(cfg, st)
	tools.PanicOnErr(err)
	go logSessionEvents(auth.Notifier())

	deps = &app.Deps{Config: cfg, Store: st, Auth: auth}
	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init(deps)
	}
}

// openStore 按配置选择存储后端，外层统一加上单次调用超时
func openStore(cfg *config.Config) (store.Store, error) {
	var st store.Store
	switch cfg.Store.Driver {
	case "mysql":
		database.Init()
		st = gormstore.New(database.DB)
	case "memory", "":
		s := memory.New()
		if cfg.Store.Seed {
			if err := memory.Seed(s); err != nil {
				return nil, err
			}
			log.Info("已加载演示数据")
		}
		st = s
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	log.Info("存储后端就绪", "driver", cfg.Store.Driver, "timeout_ms", cfg.Store.TimeoutMs)
	return store.Bounded(st, time.Duration(cfg.Store.TimeoutMs)*time.Millisecond), nil
}

func newAuthenticator(cfg *config.Config, st store.Store) (*identity.Authenticator, error) {
	var provider identity.Provider
	switch cfg.Identity.Mode {
	case "remote":
		if cfg.Identity.BaseURL == "" {
			return nil, errors.New("identity.base_url is required in remote mode")
		}
		provider = identity.NewRemote(httpclient.New(""), cfg.Identity.BaseURL, cfg.Identity.APIKey)
	case "local", "":
		provider = identity.NewLocal(st, jwt.NewSigner(cfg.JWT))
	default:
		return nil, fmt.Errorf("unknown identity mode %q", cfg.Identity.Mode)
	}

	var sessions identity.SessionStore = identity.NewMemorySessions()
	if cfg.Redis.Enable {
		if err := database.InitRedis(); err != nil {
			return nil, err
		}
		sessions = identity.NewRedisSessions(database.Redis)
	}

	opts := []identity.Option{identity.WithLogger(logger.New("Identity"))}
	if cfg.JWT.AccessExpire > 0 {
		opts = append(opts, identity.WithSessionTTL(time.Duration(cfg.JWT.AccessExpire)*time.Second))
	}
	log.Info("身份服务就绪", "mode", cfg.Identity.Mode, "redis_sessions", cfg.Redis.Enable)
	return identity.NewAuthenticator(provider, st, sessions, identity.NewNotifier(), opts...), nil
}

// logSessionEvents 会话变化只做记录，订阅在进程生命周期内不取消
func logSessionEvents(n *identity.Notifier) {
	events, _ := n.Subscribe(64)
	l := logger.New("Session")
	for evt := range events {
		l.Info("会话变化", "kind", evt.Kind, "user_id", evt.User.ID)
	}
}

func Run() {
	cfg := config.Get()
	gin.SetMode(string(cfg.Mode))
	r := gin.New()

	r.Use(sentry.Middleware())
	r.Use(middleware.SentryEnrichIP())
	r.Use(middleware.Logger(logger.Get()))
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())
	r.Use(metrics.Middleware())
	if cfg.OTel.Enable {
		r.Use(middleware.Trace())
	}

	r.GET("/metrics", metrics.Handler())
	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + cfg.Prefix))
	}

	srv := &http.Server{
		Addr:              cfg.Host + ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("服务启动", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			tools.PanicOnErr(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("正在关闭服务")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("服务关闭失败", "error", err)
	}
	if err := internalOtel.Shutdown(ctx); err != nil {
		log.Error("Failed to shutdown TracerProvider", "error", err)
	}
	if database.Redis != nil {
		_ = database.Redis.Close()
	}
	sentry.Flush(2 * time.Second)
}
