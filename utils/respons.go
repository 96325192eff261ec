package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request. Detail is either a
// human readable string or a list of field errors.
type ErrorResponse struct {
	Detail interface{} `json:"detail"`
}

func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// RespondError aborts with the error text as detail.
func RespondError(c *gin.Context, code int, err error) {
	RespondDetail(c, code, err.Error())
}

func RespondDetail(c *gin.Context, code int, detail interface{}) {
	c.AbortWithStatusJSON(code, ErrorResponse{Detail: detail})
}
