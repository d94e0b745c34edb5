package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"reminisce/internal/albums"
	"reminisce/internal/display"
	"reminisce/internal/model"
)

// albumView is a LocalAlbum plus display defaults.
type albumView struct {
	model.LocalAlbum
	Stats display.Stats `json:"stats"`
}

func (s *Server) listDemoAlbums(c *gin.Context) {
	store, err := s.demoStore(c)
	if err != nil {
		renderBackendError(c, err)
		return
	}
	items := store.Albums()
	views := make([]albumView, 0, len(items))
	for _, a := range items {
		views = append(views, albumView{LocalAlbum: a, Stats: display.StatsFor(a.ID)})
	}
	c.JSON(http.StatusOK, gin.H{"albums": views})
}

func (s *Server) addDemoAlbum(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Album name is required.", "kind": "validation", "field": "name"})
		return
	}
	store, err := s.demoStore(c)
	if err != nil {
		renderBackendError(c, err)
		return
	}
	album, err := store.Add(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		renderDemoError(c, err)
		return
	}
	s.notifier.Publish("Album created.", "success")
	c.JSON(http.StatusCreated, album)
}

func (s *Server) updateDemoAlbum(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Album name is required.", "kind": "validation", "field": "name"})
		return
	}
	store, err := s.demoStore(c)
	if err != nil {
		renderBackendError(c, err)
		return
	}
	if err := store.Update(c.Request.Context(), c.Param("albumId"), req.Name, req.Description); err != nil {
		renderDemoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (s *Server) deleteDemoAlbum(c *gin.Context) {
	store, err := s.demoStore(c)
	if err != nil {
		renderBackendError(c, err)
		return
	}
	if err := store.Delete(c.Request.Context(), c.Param("albumId")); err != nil {
		renderDemoError(c, err)
		return
	}
	s.notifier.Publish("Album deleted.", "success")
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (s *Server) addDemoPicture(c *gin.Context) {
	var req struct {
		Title      string `json:"title"`
		PictureURL string `json:"pictureURL" binding:"required"`
		UploadedBy string `json:"uploadedBy"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Picture URL is required.", "kind": "validation", "field": "pictureURL"})
		return
	}
	store, err := s.demoStore(c)
	if err != nil {
		renderBackendError(c, err)
		return
	}
	pic := model.Picture{Title: req.Title, PictureURL: req.PictureURL, UploadedBy: req.UploadedBy}
	if err := store.AddPicture(c.Request.Context(), c.Param("albumId"), pic); err != nil {
		renderDemoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"added": true})
}

func (s *Server) deleteDemoPicture(c *gin.Context) {
	store, err := s.demoStore(c)
	if err != nil {
		renderBackendError(c, err)
		return
	}
	if err := store.DeletePicture(c.Request.Context(), c.Param("albumId"), c.Param("pictureId")); err != nil {
		renderDemoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// albumDetail is the album-detail page view: the backend album plus its
// images over the public read path.
func (s *Server) albumDetail(c *gin.Context) {
	slug := c.Param("slug")
	info, err := s.visitorDepartment(c, slug)
	if err != nil {
		renderBackendError(c, err)
		return
	}
	if info == nil {
		recoveryPayload(c, slug)
		return
	}

	albumID := c.Param("albumId")
	album, err := s.backend.AlbumByID(c.Request.Context(), albumID)
	if err != nil {
		renderBackendError(c, err)
		return
	}
	images, err := s.backend.AlbumImages(c.Request.Context(), albumID)
	if err != nil {
		renderBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"album":  album,
		"images": images,
		"stats":  display.StatsFor(album.ID),
	})
}

func renderDemoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, albums.ErrNotLoaded):
		c.JSON(http.StatusConflict, gin.H{"error": "Albums are still loading.", "kind": "busy"})
	case errors.Is(err, albums.ErrAlbumNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Album not found.", "kind": "not_found"})
	default:
		renderBackendError(c, err)
	}
}
