package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reminisce/internal/albums"
	"reminisce/internal/workflow"
)

const visitorCookie = "reminisce_visitor"

const ctxVisitorSID = "visitorSID"

// visitorSession assigns every browser a stable visitor session id. The
// visitor session is independent of any admin session cookie present in the
// same browser.
func (s *Server) visitorSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(visitorCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(visitorCookie, sid, 30*24*3600, "/", "", false, true)
		}
		c.Set(ctxVisitorSID, sid)
		c.Next()
	}
}

func visitorSID(c *gin.Context) string {
	return c.GetString(ctxVisitorSID)
}

// flowFor returns the workflow bound to this visitor session, purpose and
// department, creating it on first use. A fresh instance always starts at
// Idle: verified status never carries across instantiations.
func (s *Server) flowFor(c *gin.Context, purpose, slug string) (*workflow.Workflow, error) {
	info, err := s.visitorDepartment(c, slug)
	if err != nil || info == nil {
		return nil, err
	}

	key := visitorSID(c) + "|" + purpose + "|" + slug
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.flows[key]; ok {
		return w, nil
	}
	w := workflow.New(*info, s.backend, s.host)
	s.flows[key] = w
	return w, nil
}

// demoStore returns this visitor session's hydrated demo album store.
func (s *Server) demoStore(c *gin.Context) (*albums.Store, error) {
	sid := visitorSID(c)
	s.mu.Lock()
	store, ok := s.demos[sid]
	if !ok {
		store = albums.NewStore(s.sessions, sid)
		s.demos[sid] = store
	}
	s.mu.Unlock()

	if err := store.Load(c.Request.Context()); err != nil {
		return nil, err
	}
	return store, nil
}

// recoveryPayload is the "Department Access Required" response rendered
// when department context cannot be resolved; never a crash, never a
// redirect.
func recoveryPayload(c *gin.Context, slug string) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":    "department access required",
		"guidance": "Go to the home page and select your department.",
		"slug":     slug,
	})
}
