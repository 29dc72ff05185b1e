package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oksasatya/portfolio-api/config"
	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/portfolio-api/internal/infrastructure/postgres"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

// openAuth connects to the database and returns an auth service plus its
// cleanup. Replaced in tests.
var openAuth = func(ctx context.Context, cfg *config.Config) (*application.AuthService, func(), error) {
	logger := helpers.NewLogger(cfg.AppName+"-ctl", cfg.Env)
	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	closers := []func(){pool.Close}

	var mail *application.Notifier
	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogWarn(logger, "rabbitmq unavailable, role change emails disabled", err, nil)
		} else {
			closers = append(closers, pub.Close)
			mail = &application.Notifier{Publisher: pub, Logger: logger}
		}
	}

	svc := application.NewAuthService(pginfra.NewUserRepository(pool), nil, mail, cfg, logger)
	if cfg.RedisEnabled {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		closers = append(closers, func() { _ = rdb.Close() })
		profileCache := cache.NewRedisCache(rdb, cfg.AppName+":")
		svc.Profiles = application.NewProfileService(pginfra.NewProfileRepository(pool), profileCache, logger)
	}
	return svc, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}, nil
}

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "portfolioctl",
		Short:        "Operator commands for the portfolio API",
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCommand(), newPromoteCommand(), newRoleCommand())
	return root
}
