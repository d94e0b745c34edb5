package web

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"reminisce/internal/notify"
	"reminisce/internal/workflow"
)

// workflowState exposes the machine state so the client can gate its form
// rendering the way the original modal did.
func (s *Server) workflowState(c *gin.Context) {
	w, ok := s.boundFlow(c)
	if !ok {
		return
	}
	payload := gin.H{"state": w.State().String()}
	if fe := w.LastError(); fe != nil {
		payload["error"] = fe.Message
		payload["field"] = fe.Field
	}
	c.JSON(http.StatusOK, payload)
}

// workflowBegin opens the reference input, clearing prior input and error.
func (s *Server) workflowBegin(c *gin.Context) {
	w, ok := s.boundFlow(c)
	if !ok {
		return
	}
	w.Begin()
	c.JSON(http.StatusOK, gin.H{"state": w.State().String()})
}

// workflowVerify runs the membership check against a live roster fetch.
func (s *Server) workflowVerify(c *gin.Context) {
	w, ok := s.boundFlow(c)
	if !ok {
		return
	}
	var req struct {
		ReferenceNumber string `json:"referenceNumber"`
	}
	_ = c.ShouldBindJSON(&req)

	if err := w.VerifyReference(c.Request.Context(), req.ReferenceNumber); err != nil {
		renderFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": w.State().String(), "verified": true})
}

// workflowSubmitImages runs the gated image batch: concurrent host uploads,
// then concurrent backend records, all-or-nothing reporting.
func (s *Server) workflowSubmitImages(c *gin.Context) {
	w, ok := s.boundFlow(c)
	if !ok {
		return
	}
	var req struct {
		AlbumID    string `json:"albumId"`
		AlbumName  string `json:"albumName"`
		UploadedBy string `json:"uploadedBy"`
		Files      []struct {
			Name string `json:"name"`
			Data string `json:"data"`
		} `json:"files"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid upload payload.", "kind": "validation"})
		return
	}

	files := make([]workflow.ImageFile, 0, len(req.Files))
	for _, f := range req.Files {
		data, err := base64.StdEncoding.DecodeString(f.Data)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid image encoding.", "kind": "validation", "field": "files"})
			return
		}
		files = append(files, workflow.ImageFile{Name: f.Name, Data: data})
	}

	target := workflow.Target{AlbumID: req.AlbumID, AlbumName: req.AlbumName}
	if err := w.SubmitImages(c.Request.Context(), target, req.UploadedBy, files); err != nil {
		s.notifier.Publish(err.Error(), notify.Error)
		renderFlowError(c, err)
		return
	}
	s.notifier.Publish("Pictures uploaded. Thank you for contributing!", notify.Success)
	c.JSON(http.StatusOK, gin.H{"state": w.State().String(), "uploaded": len(files)})
}

// workflowSubmitReport runs the gated report submission.
func (s *Server) workflowSubmitReport(c *gin.Context) {
	w, ok := s.boundFlow(c)
	if !ok {
		return
	}
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	_ = c.ShouldBindJSON(&req)

	if err := w.SubmitReport(c.Request.Context(), req.Title, req.Content); err != nil {
		renderFlowError(c, err)
		return
	}
	s.notifier.Publish("Report submitted.", notify.Success)
	c.JSON(http.StatusOK, gin.H{"state": w.State().String(), "submitted": true})
}

// workflowSubmitProfile runs the gated profile create/update.
func (s *Server) workflowSubmitProfile(c *gin.Context) {
	w, ok := s.boundFlow(c)
	if !ok {
		return
	}
	var req struct {
		Name     string `json:"name"`
		Nickname string `json:"nickname"`
		Quote    string `json:"quote"`
		Image    string `json:"image"`
	}
	_ = c.ShouldBindJSON(&req)

	in := workflow.ProfileInput{Name: req.Name, Nickname: req.Nickname, Quote: req.Quote, Image: req.Image}
	if err := w.SubmitProfile(c.Request.Context(), in); err != nil {
		renderFlowError(c, err)
		return
	}
	s.notifier.Publish("Profile saved.", notify.Success)
	c.JSON(http.StatusOK, gin.H{"state": w.State().String(), "submitted": true})
}

// boundFlow resolves the session's workflow for the route's purpose and
// department, rendering the recovery payload when department context is
// missing.
func (s *Server) boundFlow(c *gin.Context) (*workflow.Workflow, bool) {
	slug := c.Param("slug")
	w, err := s.flowFor(c, c.Param("purpose"), slug)
	if err != nil {
		renderBackendError(c, err)
		return nil, false
	}
	if w == nil {
		recoveryPayload(c, slug)
		return nil, false
	}
	return w, true
}
