package albums

import (
	"time"

	"reminisce/internal/model"
)

// seedAlbums is the fixed demo dataset written on first use. IDs are stable
// so repeat visits see the same collection.
func seedAlbums() []model.LocalAlbum {
	created := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	return []model.LocalAlbum{
		{
			ID:          "demo-freshers-week",
			Name:        "Freshers Week",
			Description: "First week on campus",
			CoverURL:    "https://res.cloudinary.com/demo/image/upload/freshers.jpg",
			CreatedAt:   created,
			Pictures: []model.Picture{
				{
					ID:         "demo-pic-orientation",
					AlbumID:    "demo-freshers-week",
					Title:      "Orientation day",
					PictureURL: "https://res.cloudinary.com/demo/image/upload/orientation.jpg",
					UploadedBy: "Demo Student",
					CreatedAt:  created,
				},
			},
		},
		{
			ID:          "demo-dinner-night",
			Name:        "Dinner Night",
			Description: "End of year dinner",
			CoverURL:    "https://res.cloudinary.com/demo/image/upload/dinner.jpg",
			CreatedAt:   created.AddDate(0, 2, 0),
			Pictures:    []model.Picture{},
		},
		{
			ID:          "demo-graduation",
			Name:        "Graduation",
			Description: "Convocation ceremony",
			CoverURL:    "https://res.cloudinary.com/demo/image/upload/graduation.jpg",
			CreatedAt:   created.AddDate(0, 5, 0),
			Pictures:    []model.Picture{},
		},
	}
}
