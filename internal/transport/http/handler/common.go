package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"artshare/internal/apperr"
	resp "artshare/internal/transport/http/response"
)

// fail maps a service error to exactly one response. 5xx causes are logged
// and never leak to the client.
func fail(c *gin.Context, l *zap.Logger, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		if ae.Code >= http.StatusInternalServerError {
			l.Error(ae.Msg, zap.Error(ae.Err), zap.String("path", c.FullPath()))
			resp.Fail(c, ae.Code, "")
			return
		}
		resp.Fail(c, ae.Code, ae.Msg)
		return
	}
	l.Error("unhandled error", zap.Error(err), zap.String("path", c.FullPath()))
	resp.Fail(c, http.StatusInternalServerError, "")
}

// parseUint returns 0 for anything that is not a positive integer.
func parseUint(s string) uint {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}
