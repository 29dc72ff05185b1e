package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/config"
	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/internal/container"
	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/portfolio-api/internal/infrastructure/postgres"
	"github.com/oksasatya/portfolio-api/internal/infrastructure/storage"
	handlers "github.com/oksasatya/portfolio-api/internal/interface/http"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
	"github.com/oksasatya/portfolio-api/internal/router/modules"
)

// Services is the application layer built from a container.
type Services struct {
	Auth       *application.AuthService
	Projects   *application.ProjectService
	Skills     *application.SkillService
	Experience *application.ExperienceService
	Learning   *application.LearningService
	Profiles   *application.ProfileService
	Uploads    *application.UploadService
	Contact    *application.ContactService
}

func BuildServices(c *container.Container) *Services {
	log := c.Logger
	users := pginfra.NewUserRepository(c.Pool)
	profileRepo := pginfra.NewProfileRepository(c.Pool)

	projects := application.NewResourceService[entity.Project, *entity.Project]("Project", pginfra.NewProjectRepository(c.Pool), log)
	if c.Search != nil {
		projects.Indexer = c.Search
	}

	var profileCache application.Cache
	if c.Redis != nil {
		profileCache = cache.NewRedisCache(c.Redis, c.Config.AppName+":")
	}
	profiles := application.NewProfileService(profileRepo, profileCache, log)
	auth := application.NewAuthService(users, c.JWT, c.Mail, c.Config, log)
	auth.Profiles = profiles

	return &Services{
		Auth:       auth,
		Projects:   projects,
		Skills:     application.NewResourceService[entity.Skill, *entity.Skill]("Skill", pginfra.NewSkillRepository(c.Pool), log),
		Experience: application.NewResourceService[entity.Experience, *entity.Experience]("Experience", pginfra.NewExperienceRepository(c.Pool), log),
		Learning:   application.NewResourceService[entity.LearningItem, *entity.LearningItem]("Learning item", pginfra.NewLearningRepository(c.Pool), log),
		Profiles:   profiles,
		Uploads:    application.NewUploadService(c.Store, profiles, projects, c.Config.UploadMaxBytes, log),
		Contact:    application.NewContactService(profileRepo, c.Mail, c.Config, log),
	}
}

// InitModules builds services and handlers from c and registers every
// feature module. /health is served both at the root and under the prefix.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	svc := BuildServices(c)

	health := handlers.Health(time.Now())
	r.Engine.GET("/health", health)
	r.API.GET("/health", health)

	if cfg.StorageDriver == config.StorageLocal {
		r.Engine.Static(storage.URLPrefix, cfg.UploadDir)
	}

	var allow middleware.AllowFunc
	if cfg.IsDevelopment() {
		allow = middleware.AllowPrivateIP()
	}
	deps := modules.Deps{
		Auth:    middleware.Authenticate(pginfra.NewUserRepository(c.Pool), c.JWT),
		Limiter: func(max int, keyFn middleware.KeyFunc) gin.HandlerFunc {
			return middleware.RateLimit(c.Redis, max, time.Minute, keyFn, allow)
		},
		PublicRate: cfg.AuthRateLimit,
	}

	var searcher application.ProjectSearcher
	if c.Search != nil {
		searcher = c.Search
	}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth), deps))
	r.Add(modules.NewProjectModule(handlers.NewProjectHandler(svc.Projects, searcher), searcher != nil, deps))
	r.Add(modules.NewResourceModule("/skills", handlers.NewSkillHandler(svc.Skills), deps))
	r.Add(modules.NewResourceModule("/experience", handlers.NewExperienceHandler(svc.Experience), deps))
	r.Add(modules.NewResourceModule("/learning", handlers.NewLearningHandler(svc.Learning), deps))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(svc.Profiles), deps))
	r.Add(modules.NewUploadModule(handlers.NewUploadHandler(svc.Uploads), deps))
	r.Add(modules.NewContactModule(handlers.NewContactHandler(svc.Contact), deps))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(deps))
	}
}
