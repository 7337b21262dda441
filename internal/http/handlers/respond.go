package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every client-visible error uses the {"msg": ...} body shape existing
// clients already parse.

func RespondError(ctx *gin.Context, status int, msg string) {
	ctx.JSON(status, gin.H{"msg": msg})
}

func RespondBadRequest(ctx *gin.Context, msg string) {
	RespondError(ctx, http.StatusBadRequest, msg)
}

func RespondUnauthorized(ctx *gin.Context, msg string) {
	RespondError(ctx, http.StatusUnauthorized, msg)
}

func RespondNotFound(ctx *gin.Context, msg string) {
	RespondError(ctx, http.StatusNotFound, msg)
}

// RespondInternal deliberately carries no structured body; internal detail
// stays in the logs.
func RespondInternal(ctx *gin.Context) {
	ctx.String(http.StatusInternalServerError, "Server Error")
}
