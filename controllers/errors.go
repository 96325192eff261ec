package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/coffee-outlets/schemas"
	"github.com/yeremiapane/coffee-outlets/services"
	"github.com/yeremiapane/coffee-outlets/utils"
)

// respondServiceError maps a service failure onto a status code. Validation
// failures carry the field list as detail, everything else its message.
func respondServiceError(c *gin.Context, err error) {
	var se *services.Error
	if !errors.As(err, &se) {
		utils.ErrorLogger.Errorf("%s %s: unclassified error: %v", c.Request.Method, c.FullPath(), err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	switch se.Kind {
	case services.KindValidation:
		utils.InfoLogger.Infof("%s %s rejected: %s", c.Request.Method, c.Request.URL.Path, se.Message)
		utils.RespondDetail(c, http.StatusUnprocessableEntity, se.Fields)
	case services.KindNotFound:
		utils.RespondDetail(c, http.StatusNotFound, se.Message)
	default:
		utils.ErrorLogger.Errorf("%s %s failed: %s (cause: %v)", c.Request.Method, c.Request.URL.Path, se.Message, se.Err)
		utils.RespondDetail(c, http.StatusInternalServerError, se.Message)
	}
}

// parseID reads a positive integer path parameter. Anything else is answered
// with 422 and false is returned.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		utils.RespondDetail(c, http.StatusUnprocessableEntity, []schemas.FieldError{{
			Loc:  []interface{}{schemas.SourcePath, param},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
			Type: "int_parsing",
		}})
		return 0, false
	}
	return uint(id), true
}

var errUnreadableBody = errors.New("Unable to read request body")

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		utils.InfoLogger.Infof("%s %s: reading body: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondError(c, http.StatusBadRequest, errUnreadableBody)
		return nil, false
	}
	return body, true
}
