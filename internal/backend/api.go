package backend

import (
	"context"
	"net/http"
	"net/url"

	"reminisce/internal/model"
)

// Endpoint path table. Kept in one place so every feature module issues
// uniformly-shaped requests.
const (
	pathSignup       = "/signup"
	pathSignin       = "/signin"
	pathDepartment   = "/department"
	pathStudent      = "/student"
	pathAlbum        = "/album"
	pathAdminAlbum   = "/image/getalbum"
	pathPublicImages = "/image/public/getimages"
	pathPublicUpload = "/image/public/upload"
	pathDeleteImage  = "/image/deleteimage"
	pathReport       = "/report"
	pathEvents       = "/events"
)

// SignupRequest creates an admin account, optionally creating the department
// in the same call.
type SignupRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	DepartmentName string `json:"departmentName,omitempty"`
	DepartmentCode string `json:"departmentCode,omitempty"`
}

// SigninRequest authenticates an admin.
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the shape returned by signup and signin.
type AuthResponse struct {
	Token      string `json:"token"`
	Department struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Code string `json:"code"`
		Slug string `json:"slug"`
	} `json:"department"`
}

// Statistics is the admin dashboard aggregate.
type Statistics struct {
	TotalStudents int `json:"totalStudents"`
	TotalAlbums   int `json:"totalAlbums"`
	TotalImages   int `json:"totalImages"`
	TotalReports  int `json:"totalReports"`
}

// UploadImageRequest records an already-hosted picture against an album.
type UploadImageRequest struct {
	AlbumName       string `json:"albumName"`
	AlbumID         string `json:"albumId"`
	PictureURL      string `json:"pictureURL"`
	UploadedBy      string `json:"uploadedBy"`
	ReferenceNumber string `json:"referenceNumber"`
	DepartmentSlug  string `json:"departmentSlug"`
}

// ProfileRequest creates or updates a student profile keyed by reference
// number. Image is a base64 data URL.
type ProfileRequest struct {
	ReferenceNumber string `json:"referenceNumber"`
	Name            string `json:"name,omitempty"`
	Nickname        string `json:"nickname,omitempty"`
	Quote           string `json:"quote,omitempty"`
	Image           string `json:"image,omitempty"`
}

// Signup creates an admin account plus department.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, pathSignup, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signin authenticates an admin and returns the issued token plus the
// admin's department.
func (c *Client) Signin(ctx context.Context, req SigninRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, pathSignin, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DepartmentBySlug looks up a department by its URL slug.
func (c *Client) DepartmentBySlug(ctx context.Context, slug string) (*model.DepartmentInfo, error) {
	var out model.DepartmentInfo
	if err := c.do(ctx, http.MethodGet, pathDepartment+"/"+url.PathEscape(slug), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDepartments returns every department; the landing page searches this
// list by name.
func (c *Client) ListDepartments(ctx context.Context) ([]model.DepartmentInfo, error) {
	var out []model.DepartmentInfo
	if err := c.do(ctx, http.MethodGet, pathDepartment, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DepartmentStatistics returns the admin dashboard aggregates.
func (c *Client) DepartmentStatistics(ctx context.Context, token, slug string) (*Statistics, error) {
	var out Statistics
	if err := c.do(ctx, http.MethodGet, pathDepartment+"/"+url.PathEscape(slug)+"/statistics", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StudentsByWorkspace returns the roster for one workspace.
func (c *Client) StudentsByWorkspace(ctx context.Context, workspace string) ([]model.Student, error) {
	var out []model.Student
	if err := c.do(ctx, http.MethodGet, pathStudent+"/"+url.PathEscape(workspace), "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Roster returns the flat student roster used for reference-number
// membership checks. Always fetched live, never cached.
func (c *Client) Roster(ctx context.Context) ([]model.Student, error) {
	var out []model.Student
	if err := c.do(ctx, http.MethodGet, pathStudent, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProfile creates or patches a student profile.
func (c *Client) UpdateProfile(ctx context.Context, req ProfileRequest) error {
	return c.do(ctx, http.MethodPatch, pathStudent, "", req, nil)
}

// AlbumByID fetches one album over the public path.
func (c *Client) AlbumByID(ctx context.Context, id string) (*model.Album, error) {
	var out model.Album
	if err := c.do(ctx, http.MethodGet, pathAlbum+"/"+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminAlbumByID fetches one album over the token-bearing admin path.
func (c *Client) AdminAlbumByID(ctx context.Context, token, id string) (*model.Album, error) {
	var out model.Album
	if err := c.do(ctx, http.MethodGet, pathAdminAlbum+"/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AlbumImages lists the images of an album over the public read path.
func (c *Client) AlbumImages(ctx context.Context, albumID string) ([]model.Image, error) {
	var out []model.Image
	if err := c.do(ctx, http.MethodGet, pathPublicImages+"/"+url.PathEscape(albumID), "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadImageRecord persists a hosted picture URL against an album.
func (c *Client) UploadImageRecord(ctx context.Context, req UploadImageRequest) error {
	return c.do(ctx, http.MethodPost, pathPublicUpload, "", req, nil)
}

// DeleteImage removes an image record; admin only.
func (c *Client) DeleteImage(ctx context.Context, token, imageID string) error {
	return c.do(ctx, http.MethodDelete, pathDeleteImage+"/"+url.PathEscape(imageID), token, nil, nil)
}

// CreateReport submits a verified student's report.
func (c *Client) CreateReport(ctx context.Context, rep model.Report) error {
	return c.do(ctx, http.MethodPost, pathReport, "", rep, nil)
}

// Events lists a department's events. The backend wraps them in a
// success/data envelope; it is unwrapped here at the client boundary.
func (c *Client) Events(ctx context.Context, departmentName string) ([]model.Event, error) {
	var out struct {
		Success bool `json:"success"`
		Data    struct {
			Events []model.Event `json:"events"`
		} `json:"data"`
	}
	path := pathEvents + "?department=" + url.QueryEscape(departmentName)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out.Data.Events, nil
}
