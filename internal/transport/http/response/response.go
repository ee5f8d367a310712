package response

import "github.com/gin-gonic/gin"

// Failures are always {"message": "..."} with a real HTTP status.

var statusMsg = map[int]string{
	400: "bad request",
	401: "unauthorized",
	403: "forbidden",
	404: "not found",
	409: "conflict",
	413: "request body too large",
	429: "too many requests",
	500: "internal server error",
	503: "server busy",
	504: "timeout",
}

func Fail(c *gin.Context, status int, msg string) {
	if msg == "" {
		msg = statusMsg[status]
	}
	c.JSON(status, gin.H{"message": msg})
}

// Abort is Fail for middleware: it also stops the handler chain.
func Abort(c *gin.Context, status int, msg string) {
	if msg == "" {
		msg = statusMsg[status]
	}
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}
