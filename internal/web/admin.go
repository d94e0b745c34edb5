package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reminisce/internal/auth"
	"reminisce/internal/backend"
	"reminisce/internal/department"
	"reminisce/internal/model"
	"reminisce/internal/notify"
	"reminisce/internal/session"
)

// adminSignup proxies account creation to the backend and opens a gateway
// session for the issued token.
func (s *Server) adminSignup(c *gin.Context) {
	var req backend.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Username and password are required.", "kind": "validation"})
		return
	}
	resp, err := s.backend.Signup(c.Request.Context(), req)
	if err != nil {
		renderBackendError(c, err)
		return
	}
	s.openAdminSession(c, resp)
}

// adminSignin proxies authentication to the backend and opens a gateway
// session for the issued token.
func (s *Server) adminSignin(c *gin.Context) {
	var req backend.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Username and password are required.", "kind": "validation"})
		return
	}
	resp, err := s.backend.Signin(c.Request.Context(), req)
	if err != nil {
		renderBackendError(c, err)
		return
	}
	s.openAdminSession(c, resp)
}

// openAdminSession stores the backend token and department in the admin
// slots under a fresh session id and sets the signed session cookie. The
// admin slots are distinct from the visitor slots: the two sessions never
// share cached department context.
func (s *Server) openAdminSession(c *gin.Context, resp *backend.AuthResponse) {
	sid := uuid.NewString()
	ctx := c.Request.Context()

	if err := s.sessions.Set(ctx, sid, session.SlotAdminToken, resp.Token); err != nil {
		renderBackendError(c, err)
		return
	}
	info := model.DepartmentInfo{
		ID:   resp.Department.ID,
		Name: resp.Department.Name,
		Code: resp.Department.Code,
		Slug: resp.Department.Slug,
	}
	if err := s.resolver.Remember(ctx, sid, department.ScopeAdmin, info); err != nil {
		renderBackendError(c, err)
		return
	}

	token, exp, err := auth.Issue(sid, info.Slug, s.cfg.JWTIssuer, s.cfg.JWTSigningKey, s.cfg.SessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not open session", "kind": "transport"})
		return
	}
	c.SetCookie(auth.Cookie, token, int(s.cfg.SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"department": info,
		"expiresAt":  exp.Unix(),
	})
}

// closeAdminSession clears every admin slot; used on signout and whenever
// the backend rejects the stored token.
func (s *Server) closeAdminSession(c *gin.Context, sid string) {
	ctx := c.Request.Context()
	_ = s.sessions.Clear(ctx, sid, session.SlotAdminToken)
	_ = s.resolver.Forget(ctx, sid, department.ScopeAdmin)
	c.SetCookie(auth.Cookie, "", -1, "/", "", false, true)
}

func (s *Server) adminSignout(c *gin.Context) {
	claims := adminClaims(c)
	s.closeAdminSession(c, claims.SessionID)
	c.JSON(http.StatusOK, gin.H{"signedOut": true})
}

// adminMe returns the admin's cached department context.
func (s *Server) adminMe(c *gin.Context) {
	claims := adminClaims(c)
	var info model.DepartmentInfo
	if err := s.sessions.Get(c.Request.Context(), claims.SessionID, session.SlotAdminDepartment, &info); err != nil {
		recoveryPayload(c, claims.DepartmentSlug)
		return
	}
	c.JSON(http.StatusOK, gin.H{"department": info})
}

// adminStatistics fetches the dashboard aggregates. Any backend rejection
// of the stored token logs the admin out.
func (s *Server) adminStatistics(c *gin.Context) {
	claims := adminClaims(c)
	stats, err := s.backend.DepartmentStatistics(c.Request.Context(), backendToken(c), claims.DepartmentSlug)
	if err != nil {
		s.handleAdminError(c, claims.SessionID, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// adminAlbum fetches one album over the token-bearing admin path.
func (s *Server) adminAlbum(c *gin.Context) {
	claims := adminClaims(c)
	album, err := s.backend.AdminAlbumByID(c.Request.Context(), backendToken(c), c.Param("id"))
	if err != nil {
		s.handleAdminError(c, claims.SessionID, err)
		return
	}
	c.JSON(http.StatusOK, album)
}

// adminDeleteImage removes an image record. Deletion is the only mutation
// on images and it is admin-only.
func (s *Server) adminDeleteImage(c *gin.Context) {
	claims := adminClaims(c)
	if err := s.backend.DeleteImage(c.Request.Context(), backendToken(c), c.Param("id")); err != nil {
		s.handleAdminError(c, claims.SessionID, err)
		return
	}
	s.notifier.Publish("Image deleted.", notify.Success)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// handleAdminError treats any non-2xx on an admin-scoped call as a dead
// session unless it was a plain lookup miss.
func (s *Server) handleAdminError(c *gin.Context, sid string, err error) {
	if backend.IsNotFound(err) {
		renderBackendError(c, err)
		return
	}
	s.closeAdminSession(c, sid)
	c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, sign in again", "kind": "auth"})
}

func adminClaims(c *gin.Context) auth.Claims {
	claims, _ := c.MustGet(auth.CtxClaims).(auth.Claims)
	return claims
}

func backendToken(c *gin.Context) string {
	return c.GetString(auth.CtxBackendToken)
}
