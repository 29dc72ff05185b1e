package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/pkg/response"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}

// Health reports liveness and seconds since started.
func Health(started time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		c.JSON(http.StatusOK, healthResponse{
			Status:    response.StatusSuccess,
			Message:   "Server is healthy!",
			Timestamp: now.UTC(),
			Uptime:    now.Sub(started).Seconds(),
		})
	}
}
