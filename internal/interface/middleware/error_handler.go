package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/apperror"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
	"github.com/oksasatya/portfolio-api/pkg/response"
	"github.com/oksasatya/portfolio-api/pkg/validation"
)

const msgInternal = "Internal Server Error"

// Normalize classifies err into the API error taxonomy by its shape.
func Normalize(err error) *apperror.Error {
	if e, ok := apperror.As(err); ok {
		return e
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := validation.ToDetails(err)
		return apperror.Validation(validation.Summary(details)).WithDetails(details).WithCause(err)
	}
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return apperror.Validation("Invalid JSON payload").WithDetails(validation.ToDetails(err)).WithCause(err)
	}
	if errors.Is(err, helpers.ErrInvalidDate) {
		return apperror.Validation("Invalid date, expected YYYY-MM-DD").WithCause(err)
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return apperror.Validation("Request body is required").WithCause(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apperror.Conflict("Duplicate field value entered").WithCause(err)
		case "22P02", "22007", "22008", "23514", "23503":
			return apperror.Validation("Invalid value for " + pgField(pgErr)).WithCause(err)
		}
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound("Resource not found").WithCause(err)
	case errors.Is(err, repository.ErrConflict):
		return apperror.Conflict("Duplicate field value entered").WithCause(err)
	case errors.Is(err, helpers.ErrInvalidToken), errors.Is(err, helpers.ErrExpiredToken),
		errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperror.Unauthenticated(msgTokenFailed).WithCause(err)
	}
	return apperror.Internal(err)
}

func pgField(e *pgconn.PgError) string {
	switch {
	case e.ColumnName != "":
		return e.ColumnName
	case e.ConstraintName != "":
		return e.ConstraintName
	}
	return "field"
}

// ErrorHandler is the terminal error middleware. Handlers record failures
// with c.Error and return; the last recorded error becomes the response.
// Outside development the message of a 5xx is replaced with a generic one.
func ErrorHandler(logger logrus.FieldLogger, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		appErr := Normalize(err)

		fields := logrus.Fields{
			"request_id": c.GetString(CtxRequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     appErr.Status,
			"kind":       appErr.Kind,
		}
		message := appErr.Message
		if appErr.Status >= http.StatusInternalServerError {
			helpers.LogError(logger, message, err, fields)
			if !development {
				message = msgInternal
			}
		} else {
			fields["error"] = err.Error()
			logger.WithFields(fields).Debug(message)
		}
		response.Error(c, appErr.Status, message, appErr.Details)
	}
}
