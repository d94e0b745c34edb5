package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"reminisce/internal/backend"
	"reminisce/internal/config"
	"reminisce/internal/model"
	"reminisce/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() config.App {
	return config.App{
		Env:             "test",
		JWTIssuer:       "reminisce-test",
		JWTSigningKey:   "test-signing-key",
		SessionTTL:      time.Hour,
		RateLimitPerMin: 10000,
		NotificationTTL: 50 * time.Millisecond,
	}
}

// newTestGateway builds a router over a fake backend.
func newTestGateway(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	dept := model.DepartmentInfo{ID: "d1", Name: "Computer Science 2024", Code: "CS", Slug: "cs-2024"}
	mux := http.NewServeMux()
	mux.HandleFunc("/department/cs-2024", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dept)
	})
	mux.HandleFunc("/department/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/student", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Student{
			{ID: "s1", Name: "Ada", ReferenceNumber: "REF100", Workspace: dept.Name},
		})
	})
	mux.HandleFunc("/student/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Student{})
	})
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"events":[]}}`))
	})
	mux.HandleFunc("/signin", func(w http.ResponseWriter, r *http.Request) {
		var creds backend.SigninRequest
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "hunter22" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"msg": "wrong credentials"})
			return
		}
		w.Write([]byte(`{"token":"backend-tok","department":{"id":"d1","name":"Computer Science 2024","code":"CS","slug":"cs-2024"}}`))
	})
	mux.HandleFunc("/department/cs-2024/statistics", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(backend.TokenHeader) != "backend-tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(backend.Statistics{TotalStudents: 3})
	})
	fake := httptest.NewServer(mux)
	t.Cleanup(fake.Close)

	server := NewServer(testConfig(), backend.New(fake.URL), nil, session.NewMemory())
	gw := httptest.NewServer(server.Router())
	t.Cleanup(gw.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return gw, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	raw, _ := json.Marshal(body)
	resp, err := client.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

func TestUnknownDepartmentRendersRecoveryPayload(t *testing.T) {
	gw, client := newTestGateway(t)

	resp, err := client.Get(gw.URL + "/api/d/ghost")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "department access required" {
		t.Fatalf("body = %v", body)
	}
	if !strings.Contains(body["guidance"].(string), "home page") {
		t.Fatalf("guidance = %v", body["guidance"])
	}
}

func TestDepartmentPageComposesView(t *testing.T) {
	gw, client := newTestGateway(t)

	resp, err := client.Get(gw.URL + "/api/d/cs-2024")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	dept, ok := body["department"].(map[string]any)
	if !ok || dept["slug"] != "cs-2024" {
		t.Fatalf("department = %v", body["department"])
	}
}

func TestWorkflowVerifyOverHTTP(t *testing.T) {
	gw, client := newTestGateway(t)
	base := gw.URL + "/api/d/cs-2024/workflow/upload"

	resp := postJSON(t, client, base+"/begin", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("begin status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Wrong case: exact-match policy.
	resp = postJSON(t, client, base+"/verify", map[string]string{"referenceNumber": "ref100"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("lowercase verify status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, client, base+"/verify", map[string]string{"referenceNumber": "REF100"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["verified"] != true {
		t.Fatalf("body = %v", body)
	}

	// Report with empty title is rejected as validation, not transport.
	resp = postJSON(t, client, base+"/report", map[string]string{"title": "", "content": "x"})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("empty title status = %d", resp.StatusCode)
	}
	body = decodeBody(t, resp)
	if body["kind"] != "validation" || body["field"] != "title" {
		t.Fatalf("body = %v", body)
	}
}

func TestSubmitUnreachableWithoutVerification(t *testing.T) {
	gw, client := newTestGateway(t)
	base := gw.URL + "/api/d/cs-2024/workflow/report"

	resp := postJSON(t, client, base+"/report", map[string]string{"title": "t", "content": "c"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("ungated submit status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["kind"] != "gate" {
		t.Fatalf("body = %v", body)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	gw, client := newTestGateway(t)

	resp, err := client.Get(gw.URL + "/api/admin/statistics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestSigninOpensSessionForAdminCalls(t *testing.T) {
	gw, client := newTestGateway(t)

	resp := postJSON(t, client, gw.URL+"/api/admin/signin", map[string]string{"username": "admin", "password": "hunter22"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signin status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err := client.Get(gw.URL + "/api/admin/statistics")
	if err != nil {
		t.Fatalf("get statistics: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("statistics status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["totalStudents"] != float64(3) {
		t.Fatalf("body = %v", body)
	}
}

func TestSigninRejectionSurfacesBackendMsg(t *testing.T) {
	gw, client := newTestGateway(t)

	resp := postJSON(t, client, gw.URL+"/api/admin/signin", map[string]string{"username": "admin", "password": "wrong"})
	if resp.StatusCode == http.StatusOK {
		t.Fatalf("signin accepted bad credentials")
	}
	body := decodeBody(t, resp)
	if body["error"] != "wrong credentials" {
		t.Fatalf("body = %v", body)
	}
}

func TestThemeRoundTrip(t *testing.T) {
	gw, client := newTestGateway(t)

	resp, err := client.Get(gw.URL + "/api/theme")
	if err != nil {
		t.Fatalf("get theme: %v", err)
	}
	if body := decodeBody(t, resp); body["theme"] != "light" {
		t.Fatalf("default theme = %v", body["theme"])
	}

	req, _ := http.NewRequest(http.MethodPut, gw.URL+"/api/theme", strings.NewReader(`{"theme":"dark"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("put theme: %v", err)
	}
	resp.Body.Close()

	resp, err = client.Get(gw.URL + "/api/theme")
	if err != nil {
		t.Fatalf("get theme: %v", err)
	}
	if body := decodeBody(t, resp); body["theme"] != "dark" {
		t.Fatalf("theme after put = %v", body["theme"])
	}
}

func TestDemoAlbumCRUDOverHTTP(t *testing.T) {
	gw, client := newTestGateway(t)
	base := gw.URL + "/api/d/cs-2024/albums"

	resp, err := client.Get(base)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	body := decodeBody(t, resp)
	seeded, _ := body["albums"].([]any)
	if len(seeded) == 0 {
		t.Fatalf("no seeded demo albums")
	}

	resp = postJSON(t, client, base, map[string]string{"name": "Sports Day"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	created := decodeBody(t, resp)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("created album = %v", created)
	}

	req, _ := http.NewRequest(http.MethodDelete, base+"/"+id, nil)
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}
