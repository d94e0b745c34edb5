package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"reminisce/internal/backend"
	"reminisce/internal/workflow"
)

// renderFlowError maps workflow failures onto JSON payloads that preserve
// the error taxonomy: validation errors point at their field, lookup misses
// carry guidance, everything else gets the retry-oriented message. Errors
// never navigate the caller away; they are rendered in place.
func renderFlowError(c *gin.Context, err error) {
	var fe *workflow.FlowError
	if errors.As(err, &fe) {
		switch fe.Kind {
		case workflow.KindValidation:
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": fe.Message,
				"kind":  "validation",
				"field": fe.Field,
			})
		case workflow.KindNotFound:
			c.JSON(http.StatusNotFound, gin.H{
				"error": fe.Message,
				"kind":  "not_found",
			})
		case workflow.KindPartialBatch:
			c.JSON(http.StatusBadGateway, gin.H{
				"error": fe.Message,
				"kind":  "partial_batch",
			})
		default:
			c.JSON(http.StatusBadGateway, gin.H{
				"error": fe.Message,
				"kind":  "transport",
			})
		}
		return
	}

	switch {
	case errors.Is(err, workflow.ErrNotVerified):
		c.JSON(http.StatusForbidden, gin.H{"error": "verify your reference number first", "kind": "gate"})
	case errors.Is(err, workflow.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "a submission is already in progress", "kind": "busy"})
	case errors.Is(err, workflow.ErrNotStarted):
		c.JSON(http.StatusConflict, gin.H{"error": "open the workflow first", "kind": "gate"})
	default:
		renderBackendError(c, err)
	}
}

// renderBackendError surfaces a backend failure, preferring the server's
// msg field over the generic message.
func renderBackendError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	kind := "transport"
	if backend.IsNotFound(err) {
		status = http.StatusNotFound
		kind = "not_found"
	}
	c.JSON(status, gin.H{
		"error": backend.Message(err, workflow.MsgTryAgain),
		"kind":  kind,
	})
}
