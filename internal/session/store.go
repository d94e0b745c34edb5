// Package session is the typed replacement for the browser-local key-value
// storage the original app scattered across components. Every piece of
// ambient client state lives in a named slot behind one interface, so call
// sites depend on the interface rather than a string-keyed global.
package session

import (
	"context"
	"errors"
)

// Slot names the pieces of ambient session state. Admin and visitor
// department slots are deliberately independent so an admin session and a
// visiting-student session in the same browser never cross-contaminate.
type Slot string

const (
	SlotAdminToken        Slot = "reminisce:admin:token"
	SlotAdminDepartment   Slot = "reminisce:admin:department"
	SlotVisitorDepartment Slot = "reminisce:visitor:department"
	SlotTheme             Slot = "reminisce:theme"
	SlotDemoAlbums        Slot = "reminisce:demo:albums"
)

// ErrNotFound is returned when a slot has no value for the session.
var ErrNotFound = errors.New("session: slot not set")

// Store is a per-session typed key-value store. Values are JSON documents;
// Get decodes into out, Set encodes v. sid scopes the slot to one browser
// session (the gateway serves many concurrent sessions, unlike the original
// single-browser localStorage).
type Store interface {
	Get(ctx context.Context, sid string, slot Slot, out any) error
	Set(ctx context.Context, sid string, slot Slot, v any) error
	Clear(ctx context.Context, sid string, slot Slot) error

	// Healthy reports whether the backing is reachable.
	Healthy(ctx context.Context) bool
}
