package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-blog-backend/internal/core/config"
	"go-blog-backend/internal/core/database"
	"go-blog-backend/internal/core/logger"
	"go-blog-backend/internal/core/server"
	"go-blog-backend/internal/core/session"
	"go-blog-backend/internal/domain"
	"go-blog-backend/internal/repo"
	"go-blog-backend/internal/seed"
	"go-blog-backend/internal/service"
	"go-blog-backend/internal/transport/http/handler"
	"go-blog-backend/internal/transport/http/router"
	"go-blog-backend/internal/transport/http/view"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Post{},
			&domain.Category{},
			&domain.PostCategory{},
			&domain.Comment{},
			&domain.Bookmark{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// 会话存储：配了 Redis 就用 Redis，否则退回进程内存（仅适合单机开发）
	ttl := time.Duration(cfg.Session.TTLMin) * time.Minute
	var sessions session.Store
	if cfg.Redis.Addr != "" {
		sessions = session.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, ttl)
		log.Info("session store: redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		sessions = session.NewMemory(ttl)
		log.Warn("session store: in-memory (sessions are lost on restart)")
	}

	users := repo.NewUserRepo(db)
	posts := repo.NewPostRepo(db)
	cats := repo.NewCategoryRepo(db)
	postCats := repo.NewPostCategoryRepo(db)
	comments := repo.NewCommentRepo(db)
	bookmarks := repo.NewBookmarkRepo(db)

	if err := seed.EnsureAdmin(context.Background(), users, cfg.Seed, log); err != nil {
		log.Fatal("seed admin failed", zap.Error(err))
	}

	authSvc := service.NewAuthService(users, sessions)
	postSvc := service.NewPostService(db, posts, cats, postCats, users)
	catSvc := service.NewCategoryService(cats)
	commentSvc := service.NewCommentService(comments, users)
	bookmarkSvc := service.NewBookmarkService(bookmarks, posts, postCats, cats)

	cookieTTLSec := cfg.Session.TTLMin * 60
	r := router.NewAPIEngine(router.APIDeps{
		Log:        log,
		Sessions:   sessions,
		CookieName: cfg.Session.CookieName,

		Auth:      handler.NewAuthHandler(authSvc, cfg.Session.CookieName, cookieTTLSec, cfg.Session.Secure),
		Posts:     handler.NewPostHandler(postSvc),
		Comments:  handler.NewCommentHandler(commentSvc),
		Bookmarks: handler.NewBookmarkHandler(bookmarkSvc),
		View: view.NewHandler(authSvc, postSvc, commentSvc, catSvc,
			cfg.Session.CookieName, cookieTTLSec, cfg.Session.Secure),

		TemplateGlob: "web/templates/*.html",
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("blog api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("blog api start FAILED", zap.Error(err))
		}
	}()
	log.Info("blog api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("blog api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File != "" {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
			Filename:   cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		})
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
