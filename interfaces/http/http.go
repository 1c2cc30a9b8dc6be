package http

import (
	"errors"
	"net/http"
	"strconv"

	"vidstream/domain/dto"
	"vidstream/domain/model"

	"github.com/gin-gonic/gin"
)

// statusFromError translates domain sentinel errors to HTTP status codes.
// Anything unrecognized is a 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func abortWithError(ctx *gin.Context, err error) {
	status := statusFromError(err)
	ctx.JSON(status, dto.Res{
		ResponseCode:    strconv.Itoa(status),
		ResponseMessage: err.Error(),
	})
}

func okRes(message string, data interface{}) dto.Res {
	return dto.Res{ResponseCode: "200", ResponseMessage: message, Data: data}
}
