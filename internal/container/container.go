package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/config"
	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/internal/infrastructure/search"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

// Container carries the components built in main to the router modules.
// Optional integrations are nil when disabled.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	JWT    *helpers.JWTManager
	Store  repository.ObjectStore

	Redis  *redis.Client         // optional
	Search *search.ProjectIndex  // optional
	Mail   *application.Notifier // optional
}
