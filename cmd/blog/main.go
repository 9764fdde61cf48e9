// Command blog serves the Inkwell blog API.
//
// @title                       Inkwell Blog API
// @version                     1.0
// @description                 Accounts, roles and posts for the Inkwell blog.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the session token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog/internal/api"
	"github.com/inkwell/blog/internal/api/handler"
	"github.com/inkwell/blog/internal/core/ports"
	"github.com/inkwell/blog/internal/core/service"
	mongodb "github.com/inkwell/blog/internal/infrastructure/db/mongo"
	redisdb "github.com/inkwell/blog/internal/infrastructure/db/redis"
	"github.com/inkwell/blog/internal/infrastructure/http/handlers"
	"github.com/inkwell/blog/internal/infrastructure/mail"
	"github.com/inkwell/blog/internal/infrastructure/queue"
	"github.com/inkwell/blog/internal/infrastructure/token"
	"github.com/inkwell/blog/internal/pkg/config"
	"github.com/inkwell/blog/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "blog",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "blog",
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Roles ---
	roleRepo := mongodb.NewRoleRepository(db)
	if err := mongodb.EnsureIndexes(ctx, roleRepo); err != nil {
		return err
	}
	roles, err := service.NewRoleService(roleRepo, logger.Component("roles")).InsertDefaultRoles(ctx)
	if err != nil {
		return err
	}

	userRepo := mongodb.NewUserRepository(db, roles)
	postRepo := mongodb.NewPostRepository(db)
	if err := mongodb.EnsureIndexes(ctx, userRepo, postRepo); err != nil {
		return err
	}

	// --- Services ---
	codec, err := token.NewCodec(token.Config{
		Secret:    cfg.Token.SecretKey,
		Algorithm: cfg.Token.Algorithm,
		Issuer:    cfg.Token.Issuer,
	})
	if err != nil {
		return err
	}

	accounts := service.NewAccountService(userRepo, roles, codec, redisdb.NewSessionRevoker(rdb), service.AccountConfig{
		AdminEmail: cfg.Blog.Admin,
		SessionTTL: cfg.Token.SessionTTL,
	}, logger.Component("accounts"))
	profiles := service.NewProfileService(userRepo, roles, logger.Component("profiles"))
	posts := service.NewPostService(postRepo, userRepo, cfg.Blog.PostsPerPage, logger.Component("posts"))

	// --- Mail ---
	mailer, err := newMailer(cfg, log)
	if err != nil {
		return err
	}
	dispatcher := queue.NewMailDispatcher(cfg.Mail.Workers, mailer, logger.Component("mail"))
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Accounts: accounts,
		Profiles: profiles,
		Posts:    posts,
		Mail:     dispatcher,
		MailConfig: handler.MailConfig{
			BaseURL:  cfg.BaseURL,
			TokenTTL: cfg.Token.TTL,
		},
		Readiness: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
		Log: logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}

// newMailer delivers over SMTP when MAIL_SERVER is set and logs messages
// otherwise.
func newMailer(cfg *config.Config, log zerolog.Logger) (ports.Mailer, error) {
	if cfg.Mail.Server == "" {
		log.Warn().Msg("MAIL_SERVER not set, emails will be logged instead of sent")
		return mail.NewLogMailer(logger.Component("mail")), nil
	}
	m, err := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:          cfg.Mail.Server,
		Port:          cfg.Mail.Port,
		Username:      cfg.Mail.Username,
		Password:      cfg.Mail.Password,
		Sender:        cfg.Mail.Sender,
		SubjectPrefix: cfg.Mail.SubjectPrefix,
		Timeout:       cfg.Mail.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
