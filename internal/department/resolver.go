// Package department resolves and caches department context for
// department-scoped pages.
package department

import (
	"context"
	"strings"

	"reminisce/internal/backend"
	"reminisce/internal/model"
	"reminisce/internal/session"
)

// Scope selects which of the two independent department caches a lookup
// uses. An admin session and a visited-link student session can coexist in
// the same browser; their cached departments must never overwrite each
// other.
type Scope int

const (
	ScopeAdmin Scope = iota
	ScopeVisitor
)

func (s Scope) slot() session.Slot {
	if s == ScopeAdmin {
		return session.SlotAdminDepartment
	}
	return session.SlotVisitorDepartment
}

// Resolver decouples department-scoped pages from re-fetching department
// metadata on every navigation.
type Resolver struct {
	store   session.Store
	backend *backend.Client
}

// NewResolver creates a resolver over the given session store and backend.
func NewResolver(store session.Store, client *backend.Client) *Resolver {
	return &Resolver{store: store, backend: client}
}

// Ensure returns the department for slug, serving from the scope's cache
// when the cached slug matches and falling back to a remote lookup
// otherwise. A failed lookup returns (nil, nil): the caller owns the
// "select your department from the home page" recovery path, and a deep
// link must not crash.
func (r *Resolver) Ensure(ctx context.Context, sid string, scope Scope, slug string) (*model.DepartmentInfo, error) {
	var cached model.DepartmentInfo
	err := r.store.Get(ctx, sid, scope.slot(), &cached)
	if err == nil && cached.Slug == slug {
		return &cached, nil
	}

	info, err := r.backend.DepartmentBySlug(ctx, slug)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.store.Set(ctx, sid, scope.slot(), info); err != nil {
		return nil, err
	}
	return info, nil
}

// SearchByName finds a department by its human-entered name,
// case-insensitively, for the landing page. Returns (nil, nil) when no
// department matches.
func (r *Resolver) SearchByName(ctx context.Context, name string) (*model.DepartmentInfo, error) {
	departments, err := r.backend.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.TrimSpace(name)
	for i := range departments {
		if strings.EqualFold(departments[i].Name, needle) {
			return &departments[i], nil
		}
	}
	return nil, nil
}

// Remember stores info in the scope's cache without a lookup, used after
// signin returns the admin's department inline.
func (r *Resolver) Remember(ctx context.Context, sid string, scope Scope, info model.DepartmentInfo) error {
	return r.store.Set(ctx, sid, scope.slot(), info)
}

// Forget clears the scope's cached department.
func (r *Resolver) Forget(ctx context.Context, sid string, scope Scope) error {
	return r.store.Clear(ctx, sid, scope.slot())
}
