package department

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"reminisce/internal/backend"
	"reminisce/internal/model"
	"reminisce/internal/session"
)

func newDeptBackend(t *testing.T, known map[string]model.DepartmentInfo) (*backend.Client, *int64) {
	t.Helper()
	var lookups int64
	mux := http.NewServeMux()
	mux.HandleFunc("/department/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&lookups, 1)
		slug := r.URL.Path[len("/department/"):]
		info, ok := known[slug]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"msg": "department not found"})
			return
		}
		json.NewEncoder(w).Encode(info)
	})
	mux.HandleFunc("/department", func(w http.ResponseWriter, r *http.Request) {
		var all []model.DepartmentInfo
		for _, info := range known {
			all = append(all, info)
		}
		json.NewEncoder(w).Encode(all)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return backend.New(srv.URL), &lookups
}

var csDept = model.DepartmentInfo{ID: "d1", Name: "Computer Science 2024", Code: "CS", Slug: "cs-2024"}

func TestEnsureCachesAfterFirstLookup(t *testing.T) {
	client, lookups := newDeptBackend(t, map[string]model.DepartmentInfo{"cs-2024": csDept})
	r := NewResolver(session.NewMemory(), client)
	ctx := context.Background()

	info, err := r.Ensure(ctx, "sid", ScopeVisitor, "cs-2024")
	if err != nil || info == nil {
		t.Fatalf("first ensure: info=%v err=%v", info, err)
	}
	info, err = r.Ensure(ctx, "sid", ScopeVisitor, "cs-2024")
	if err != nil || info == nil || info.Name != csDept.Name {
		t.Fatalf("second ensure: info=%v err=%v", info, err)
	}
	if *lookups != 1 {
		t.Fatalf("remote lookups = %d, want 1 (cache hit expected)", *lookups)
	}
}

func TestEnsureRefetchesOnSlugMismatch(t *testing.T) {
	ee := model.DepartmentInfo{ID: "d2", Name: "Electrical Engineering 2024", Code: "EE", Slug: "ee-2024"}
	client, lookups := newDeptBackend(t, map[string]model.DepartmentInfo{"cs-2024": csDept, "ee-2024": ee})
	r := NewResolver(session.NewMemory(), client)
	ctx := context.Background()

	if _, err := r.Ensure(ctx, "sid", ScopeVisitor, "cs-2024"); err != nil {
		t.Fatalf("ensure cs: %v", err)
	}
	info, err := r.Ensure(ctx, "sid", ScopeVisitor, "ee-2024")
	if err != nil || info == nil || info.Slug != "ee-2024" {
		t.Fatalf("ensure ee: info=%v err=%v", info, err)
	}
	if *lookups != 2 {
		t.Fatalf("remote lookups = %d, want 2", *lookups)
	}
}

func TestEnsureReturnsNilOnLookupMiss(t *testing.T) {
	client, _ := newDeptBackend(t, nil)
	r := NewResolver(session.NewMemory(), client)

	info, err := r.Ensure(context.Background(), "sid", ScopeVisitor, "ghost")
	if err != nil {
		t.Fatalf("lookup miss must not error: %v", err)
	}
	if info != nil {
		t.Fatalf("expected nil department, got %+v", info)
	}
}

func TestScopesUseIndependentCaches(t *testing.T) {
	client, lookups := newDeptBackend(t, map[string]model.DepartmentInfo{"cs-2024": csDept})
	store := session.NewMemory()
	r := NewResolver(store, client)
	ctx := context.Background()

	if _, err := r.Ensure(ctx, "sid", ScopeAdmin, "cs-2024"); err != nil {
		t.Fatalf("admin ensure: %v", err)
	}
	// Visitor scope has its own cache, so this costs a second lookup.
	if _, err := r.Ensure(ctx, "sid", ScopeVisitor, "cs-2024"); err != nil {
		t.Fatalf("visitor ensure: %v", err)
	}
	if *lookups != 2 {
		t.Fatalf("remote lookups = %d, want 2 (independent caches)", *lookups)
	}
}

func TestSearchByNameIsCaseInsensitive(t *testing.T) {
	client, _ := newDeptBackend(t, map[string]model.DepartmentInfo{"cs-2024": csDept})
	r := NewResolver(session.NewMemory(), client)

	info, err := r.SearchByName(context.Background(), "computer science 2024")
	if err != nil || info == nil {
		t.Fatalf("search: info=%v err=%v", info, err)
	}
	if info.Slug != "cs-2024" {
		t.Fatalf("slug = %q", info.Slug)
	}

	info, err = r.SearchByName(context.Background(), "Philosophy 1999")
	if err != nil {
		t.Fatalf("search miss must not error: %v", err)
	}
	if info != nil {
		t.Fatalf("expected nil for unknown name, got %+v", info)
	}
}
