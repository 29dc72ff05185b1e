package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
)

// Deps holds the shared middleware every module draws from.
type Deps struct {
	Auth gin.HandlerFunc
	// Limiter returns a per-minute rate limiter allowing max requests per key.
	Limiter func(max int, keyFn middleware.KeyFunc) gin.HandlerFunc
	// PublicRate is the per-IP budget for unauthenticated write endpoints.
	PublicRate int
}

// writers is the chain for content writes: authenticated owner or admin.
func (d Deps) writers(h gin.HandlerFunc) []gin.HandlerFunc {
	return []gin.HandlerFunc{d.Auth, middleware.RequireOwnerOrAdmin(), h}
}
