// Package albums is the local album/picture store: a CRUD experience backed
// by session storage for the period before the backend owns albums.
package albums

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"reminisce/internal/model"
	"reminisce/internal/session"
)

// ErrNotLoaded guards every mutation until Load has completed once. Without
// this gate an empty pre-hydration state could be persisted over previously
// stored albums.
var ErrNotLoaded = errors.New("albums: store not loaded")

// ErrAlbumNotFound is returned for operations on an unknown album id.
var ErrAlbumNotFound = errors.New("albums: album not found")

// Store holds one session's demo album collection in memory and mirrors
// every mutation to the session store's demo slot.
type Store struct {
	mu       sync.Mutex
	sessions session.Store
	sid      string
	loaded   bool
	items    []model.LocalAlbum
}

// NewStore creates an unloaded store for the given session.
func NewStore(sessions session.Store, sid string) *Store {
	return &Store{sessions: sessions, sid: sid}
}

// Load hydrates the collection from session storage, seeding the fixed demo
// dataset and persisting it immediately on first use. Only after Load has
// run once do mutations persist.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	var stored []model.LocalAlbum
	err := s.sessions.Get(ctx, s.sid, session.SlotDemoAlbums, &stored)
	switch {
	case err == nil:
		s.items = stored
	case errors.Is(err, session.ErrNotFound):
		s.items = seedAlbums()
		if err := s.persistLocked(ctx); err != nil {
			s.items = nil
			return err
		}
	default:
		return err
	}
	s.loaded = true
	return nil
}

// Loaded reports whether hydration has completed.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Albums returns a copy of the collection.
func (s *Store) Albums() []model.LocalAlbum {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.LocalAlbum, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns one album by id.
func (s *Store) Get(id string) (model.LocalAlbum, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.items {
		if a.ID == id {
			return a, true
		}
	}
	return model.LocalAlbum{}, false
}

// Add appends a new album and persists.
func (s *Store) Add(ctx context.Context, name, description string) (model.LocalAlbum, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return model.LocalAlbum{}, ErrNotLoaded
	}
	album := model.LocalAlbum{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Pictures:    []model.Picture{},
		CreatedAt:   time.Now().UTC(),
	}
	s.items = append(s.items, album)
	if err := s.persistLocked(ctx); err != nil {
		return model.LocalAlbum{}, err
	}
	return album, nil
}

// Update renames an album and persists.
func (s *Store) Update(ctx context.Context, id, name, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Name = name
			s.items[i].Description = description
			return s.persistLocked(ctx)
		}
	}
	return ErrAlbumNotFound
}

// Delete removes an album and persists.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persistLocked(ctx)
		}
	}
	return ErrAlbumNotFound
}

// AddPicture appends a picture to an album and persists.
func (s *Store) AddPicture(ctx context.Context, albumID string, pic model.Picture) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	for i := range s.items {
		if s.items[i].ID == albumID {
			if pic.ID == "" {
				pic.ID = uuid.NewString()
			}
			pic.AlbumID = albumID
			if pic.CreatedAt.IsZero() {
				pic.CreatedAt = time.Now().UTC()
			}
			s.items[i].Pictures = append(s.items[i].Pictures, pic)
			return s.persistLocked(ctx)
		}
	}
	return ErrAlbumNotFound
}

// DeletePicture removes a picture from an album and persists.
func (s *Store) DeletePicture(ctx context.Context, albumID, pictureID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	for i := range s.items {
		if s.items[i].ID != albumID {
			continue
		}
		pics := s.items[i].Pictures
		for j := range pics {
			if pics[j].ID == pictureID {
				s.items[i].Pictures = append(pics[:j], pics[j+1:]...)
				return s.persistLocked(ctx)
			}
		}
	}
	return ErrAlbumNotFound
}

func (s *Store) persistLocked(ctx context.Context) error {
	return s.sessions.Set(ctx, s.sid, session.SlotDemoAlbums, s.items)
}
