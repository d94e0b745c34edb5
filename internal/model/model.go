package model

import "time"

// DepartmentInfo identifies a tenant workspace. The slug is the stable
// external identifier used in every URL; the name is the human-entered
// search key matched case-insensitively on the landing page.
type DepartmentInfo struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Student is a roster entry. ReferenceNumber is the sole credential for
// student-side actions and is only ever checked against the roster of the
// department currently in scope.
type Student struct {
	ID              string `json:"_id"`
	Name            string `json:"name"`
	Nickname        string `json:"nickname,omitempty"`
	Image           string `json:"image,omitempty"`
	Quote           string `json:"quote,omitempty"`
	ReferenceNumber string `json:"referenceNumber"`
	Workspace       string `json:"workspace"`
}

// Album groups zero or more Images under a department.
type Album struct {
	ID            string    `json:"_id"`
	AlbumName     string    `json:"albumName"`
	WorkspaceName string    `json:"workspaceName"`
	DepartmentID  string    `json:"departmentId"`
	Workspace     string    `json:"workspace"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Image is a backend record pointing at externally hosted picture bytes.
// The backend never stores binary content; PictureURL comes from the image
// host after a successful upload.
type Image struct {
	ID              string     `json:"_id"`
	AlbumName       string     `json:"albumName"`
	AlbumID         string     `json:"albumId"`
	PictureURL      string     `json:"pictureURL"`
	UploadedBy      string     `json:"uploadedBy"`
	ReferenceNumber string     `json:"referenceNumber,omitempty"`
	DepartmentID    string     `json:"departmentId"`
	Workspace       string     `json:"workspace"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// Event statuses drive presentational treatment only.
const (
	EventUpcoming  = "upcoming"
	EventOngoing   = "ongoing"
	EventCompleted = "completed"
)

// Event is a department event. The backend is loose about field names
// (id/_id, venue/location, eventDate/date); rawEvent absorbs the aliases and
// Normalize folds them onto this struct.
type Event struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Venue        string `json:"venue"`
	EventDate    string `json:"eventDate"`
	Time         string `json:"time"`
	Department   string `json:"department"`
	Status       string `json:"status"`
	Attendees    int    `json:"attendees"`
	MaxAttendees int    `json:"maxAttendees,omitempty"`
}

// Report is a student submission; immutable after creation.
type Report struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	ReferenceNumber string `json:"referenceNumber"`
	DepartmentSlug  string `json:"departmentSlug"`
}

// Picture is a locally stored album entry used by the demo album store.
type Picture struct {
	ID         string    `json:"id"`
	AlbumID    string    `json:"albumId"`
	Title      string    `json:"title"`
	PictureURL string    `json:"pictureURL"`
	UploadedBy string    `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LocalAlbum is the demo album shape held in browser-equivalent local
// storage, distinct from the backend Album record.
type LocalAlbum struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CoverURL    string    `json:"coverURL,omitempty"`
	Pictures    []Picture `json:"pictures"`
	CreatedAt   time.Time `json:"createdAt"`
}
