package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/pkg/response"
)

// fail hands err to the terminal ErrorHandler middleware.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

// sendData writes {status:"success", data}.
func sendData[T any](c *gin.Context, status int, data T) {
	response.Success(c, status, data, "")
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// baseURL is the scheme and host the client used to reach the API.
func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if p := c.GetHeader("X-Forwarded-Proto"); p != "" {
		scheme, _, _ = strings.Cut(p, ",")
		scheme = strings.TrimSpace(scheme)
	}
	return scheme + "://" + c.Request.Host
}
