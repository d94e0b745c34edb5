package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reminisce/internal/department"
	"reminisce/internal/display"
	"reminisce/internal/model"
)

// visitorDepartment resolves department context for the visiting-student
// scope, serving from the visitor cache when the slug matches.
func (s *Server) visitorDepartment(c *gin.Context, slug string) (*model.DepartmentInfo, error) {
	return s.resolver.Ensure(c.Request.Context(), visitorSID(c), department.ScopeVisitor, slug)
}

// searchDepartments finds a department by human-entered name for the
// landing page. Name equality is case-insensitive.
func (s *Server) searchDepartments(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Enter your department name.",
			"kind":  "validation",
			"field": "name",
		})
		return
	}
	info, err := s.resolver.SearchByName(c.Request.Context(), name)
	if err != nil {
		renderBackendError(c, err)
		return
	}
	if info == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":    "Department not found.",
			"kind":     "not_found",
			"guidance": "Check the spelling or ask your admin for the department link.",
		})
		return
	}
	c.JSON(http.StatusOK, info)
}

// departmentPage composes the department micro-site view: department info,
// roster and events, with display defaults applied at this boundary.
func (s *Server) departmentPage(c *gin.Context) {
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

	students, err := s.backend.StudentsByWorkspace(c.Request.Context(), info.Name)
	if err != nil {
		students = nil
	}
	events, err := s.backend.Events(c.Request.Context(), info.Name)
	if err != nil {
		events = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"department": info,
		"students":   students,
		"events":     decorateEvents(events),
	})
}

func (s *Server) listStudents(c *gin.Context) {
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
	students, err := s.backend.StudentsByWorkspace(c.Request.Context(), info.Name)
	if err != nil {
		renderBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

func (s *Server) listEvents(c *gin.Context) {
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
	events, err := s.backend.Events(c.Request.Context(), info.Name)
	if err != nil {
		renderBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": decorateEvents(events)})
}

// eventView is an Event plus its presentation-boundary defaults.
type eventView struct {
	model.Event
	Attendees int           `json:"attendees"`
	Stats     display.Stats `json:"stats"`
}

func decorateEvents(events []model.Event) []eventView {
	views := make([]eventView, 0, len(events))
	for _, e := range events {
		views = append(views, eventView{
			Event:     e,
			Attendees: display.AttendeesFor(e.ID, e.Attendees, e.MaxAttendees),
			Stats:     display.StatsFor(e.ID),
		})
	}
	return views
}
