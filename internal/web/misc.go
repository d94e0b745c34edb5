package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reminisce/internal/session"
)

// currentNotification returns the visible notification, if any. The slot is
// process-wide and single-occupancy; a newer notification replaces an older
// one rather than queueing.
func (s *Server) currentNotification(c *gin.Context) {
	note := s.notifier.Current()
	if note == nil {
		c.JSON(http.StatusOK, gin.H{"notification": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notification": note})
}

// getTheme returns the visitor's persisted theme preference.
func (s *Server) getTheme(c *gin.Context) {
	var theme string
	if err := s.sessions.Get(c.Request.Context(), visitorSID(c), session.SlotTheme, &theme); err != nil {
		theme = "light"
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

// putTheme persists the visitor's theme preference.
func (s *Server) putTheme(c *gin.Context) {
	var req struct {
		Theme string `json:"theme" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Theme is required.", "kind": "validation", "field": "theme"})
		return
	}
	if req.Theme != "light" && req.Theme != "dark" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Theme must be light or dark.", "kind": "validation", "field": "theme"})
		return
	}
	if err := s.sessions.Set(c.Request.Context(), visitorSID(c), session.SlotTheme, req.Theme); err != nil {
		renderBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}
