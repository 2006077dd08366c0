package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"claritydocs-backend/internal/fault"
)

// Fault maps a classified failure onto the standard error envelope.
func Fault(c *gin.Context, err error) {
	kind, ok := fault.KindOf(err)
	if !ok {
		Error(c, http.StatusInternalServerError, "internal_error", "unexpected error", nil)
		return
	}
	msg := fault.MessageOf(err)
	switch kind {
	case fault.KindValidation:
		Error(c, http.StatusBadRequest, "invalid_request", msg, nil)
	case fault.KindPermission:
		Error(c, http.StatusForbidden, "forbidden", msg, nil)
	case fault.KindConfiguration:
		Error(c, http.StatusInternalServerError, "config_error", msg, nil)
	case fault.KindUpstream:
		Error(c, http.StatusBadGateway, "upstream_error", msg, nil)
	case fault.KindSchema:
		Error(c, http.StatusBadGateway, "schema_mismatch", msg, nil)
	case fault.KindPersistence:
		Error(c, http.StatusInternalServerError, "persistence_error", msg, nil)
	default:
		Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
