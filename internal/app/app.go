package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/yael201062/rest-api2/internal/app/server"
	"github.com/yael201062/rest-api2/internal/config"
	"github.com/yael201062/rest-api2/internal/delivery/http"
	"github.com/yael201062/rest-api2/internal/service"
	"github.com/yael201062/rest-api2/internal/service/auth"
	"github.com/yael201062/rest-api2/internal/service/comment"
	"github.com/yael201062/rest-api2/internal/service/post"
	"github.com/yael201062/rest-api2/internal/storage/postgres"
	"github.com/yael201062/rest-api2/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	if cfg.JWT.SecretKey == "" {
		log.Warn("no token secret configured, every token operation will fail")
	}

	connStr := postgres.ConnString(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err := postgres.ApplyMigrations(connStr); err != nil {
		log.FatalErr("error applying migrations", err)
	}

	pg, err := postgres.NewPostgresPool(connStr)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	userRepo := postgres.NewUserPostgres(pg.Pool)
	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	postRepo := postgres.NewPostPostgres(pg.Pool)
	commentRepo := postgres.NewCommentPostgres(pg.Pool)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	u := service.Collection{
		AuthService:    auth.NewAuthService(log, jwtManager, userRepo, tokenRepo),
		PostService:    post.NewPostService(log, postRepo),
		CommentService: comment.NewCommentService(log, commentRepo),
	}

	r := http.InitRoutes(log, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	log.Info("listening on " + cfg.HTTPServer.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}

	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
