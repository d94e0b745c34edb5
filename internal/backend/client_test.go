package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenHeaderAttachedToAdminCalls(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(TokenHeader)
		json.NewEncoder(w).Encode(Statistics{TotalStudents: 12})
	}))
	defer srv.Close()

	c := New(srv.URL)
	stats, err := c.DepartmentStatistics(context.Background(), "tok-abc", "cs-2024")
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if gotToken != "tok-abc" {
		t.Fatalf("x-access-token = %q", gotToken)
	}
	if stats.TotalStudents != 12 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestAnonymousCallsCarryNoToken(t *testing.T) {
	var sawHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header[http.CanonicalHeaderKey(TokenHeader)]
		json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Roster(context.Background()); err != nil {
		t.Fatalf("roster: %v", err)
	}
	if sawHeader {
		t.Fatalf("anonymous call carried %s", TokenHeader)
	}
}

func TestServerMsgPreferredInErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"msg": "username already taken"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Signup(context.Background(), SignupRequest{Username: "a", Password: "b"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if Message(err, "fallback") != "username already taken" {
		t.Fatalf("message = %q", Message(err, "fallback"))
	}
}

func TestNotFoundKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL).DepartmentBySlug(context.Background(), "ghost")
	if !IsNotFound(err) {
		t.Fatalf("expected not-found kind, got %v", err)
	}
}

func TestFallbackWhenBodyHasNoMsg(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListDepartments(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if Message(err, "please retry") != "please retry" {
		t.Fatalf("message = %q", Message(err, "please retry"))
	}
}

func TestEventsEnvelopeUnwrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("department"); got != "Computer Science 2024" {
			t.Errorf("department query = %q", got)
		}
		w.Write([]byte(`{"success":true,"data":{"events":[
			{"id":"e1","title":"Orientation","status":"upcoming"},
			{"_id":"e2","title":"Dinner","location":"Main Hall","date":"2024-06-01","status":"completed"}
		]}}`))
	}))
	defer srv.Close()

	events, err := New(srv.URL).Events(context.Background(), "Computer Science 2024")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d", len(events))
	}
	if events[1].ID != "e2" || events[1].Venue != "Main Hall" || events[1].EventDate != "2024-06-01" {
		t.Fatalf("alias folding failed: %+v", events[1])
	}
}

func TestTransportErrorKind(t *testing.T) {
	c := New("http://127.0.0.1:0")
	_, err := c.Roster(context.Background())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	be, ok := err.(*Error)
	if !ok || be.Kind != KindTransport {
		t.Fatalf("kind = %v", err)
	}
}
