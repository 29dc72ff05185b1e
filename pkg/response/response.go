package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/pkg/listquery"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type APIResponse[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

type ErrorResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Error     any    `json:"error,omitempty"`
}

type PagedResponse[T any] struct {
	Status     string               `json:"status"`
	Count      int                  `json:"count"`
	Total      int64                `json:"total"`
	Pagination listquery.Pagination `json:"pagination"`
	Data       []T                  `json:"data"`
}

func Success[T any](ctx *gin.Context, status int, data T, message string) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	}
	ctx.JSON(status, resp)
	return resp
}

func Paged[T any](ctx *gin.Context, items []T, total int64, pagination listquery.Pagination) PagedResponse[T] {
	if items == nil {
		items = []T{}
	}
	resp := PagedResponse[T]{
		Status:     StatusSuccess,
		Count:      len(items),
		Total:      total,
		Pagination: pagination,
		Data:       items,
	}
	ctx.JSON(http.StatusOK, resp)
	return resp
}

func Error(ctx *gin.Context, status int, message string, details any) ErrorResponse {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := ErrorResponse{
		Status:    StatusError,
		Message:   message,
		RequestID: ctx.GetString("request_id"),
		Error:     details,
	}
	ctx.AbortWithStatusJSON(status, resp)
	return resp
}
