package cloudinary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newHost(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handle))
	t.Cleanup(srv.Close)
	c := New("testcloud", "yearbook-preset", "key", "secret", "reminisce")
	c.BaseURL = srv.URL
	return c, srv
}

func TestUnsignedUploadCarriesPreset(t *testing.T) {
	c, _ := newHost(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/testcloud/image/upload" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("upload_preset"); got != "yearbook-preset" {
			t.Errorf("upload_preset = %q", got)
		}
		if got := r.FormValue("folder"); got != "reminisce" {
			t.Errorf("folder = %q", got)
		}
		// The unsigned path must not sign.
		if r.FormValue("signature") != "" {
			t.Errorf("unsigned upload carried a signature")
		}
		json.NewEncoder(w).Encode(UploadResult{PublicID: "p1", SecureURL: "https://res.example/p1.jpg"})
	})

	res, err := c.UploadBytes(context.Background(), []byte("jpegbytes"), "photo.jpg")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if res.SecureURL != "https://res.example/p1.jpg" {
		t.Fatalf("secure url = %q", res.SecureURL)
	}
}

func TestUploadBase64UsesFileField(t *testing.T) {
	c, _ := newHost(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("file"); got != "data:image/png;base64,QUJD" {
			t.Errorf("file = %q", got)
		}
		json.NewEncoder(w).Encode(UploadResult{SecureURL: "https://res.example/x.png"})
	})

	if _, err := c.UploadBase64(context.Background(), "data:image/png;base64,QUJD"); err != nil {
		t.Fatalf("upload: %v", err)
	}
}

func TestUploadSurfacesHostError(t *testing.T) {
	c, _ := newHost(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid preset"}}`))
	})
	if _, err := c.UploadBytes(context.Background(), []byte("x"), "x.jpg"); err == nil {
		t.Fatalf("expected error from host 400")
	}
}

func TestDestroyIsSigned(t *testing.T) {
	c, _ := newHost(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/testcloud/image/destroy" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.FormValue("signature") == "" {
			t.Errorf("destroy request missing signature")
		}
		if r.FormValue("api_key") != "key" {
			t.Errorf("api_key = %q", r.FormValue("api_key"))
		}
		json.NewEncoder(w).Encode(map[string]string{"result": "ok"})
	})

	if err := c.Destroy(context.Background(), "p1"); err != nil {
		t.Fatalf("destroy: %v", err)
	}
}

func TestDestroyRequiresCredentials(t *testing.T) {
	c := New("testcloud", "preset", "", "", "")
	if err := c.Destroy(context.Background(), "p1"); err == nil {
		t.Fatalf("expected credential error")
	}
}

func TestSignExcludesAPIKeyAndFile(t *testing.T) {
	c := New("cloud", "preset", "key", "secret", "")
	sig1 := c.sign(map[string]string{"public_id": "p", "timestamp": "100"})
	sig2 := c.sign(map[string]string{"public_id": "p", "timestamp": "100", "api_key": "different", "file": "zzz"})
	if sig1 != sig2 {
		t.Fatalf("signature depends on excluded params")
	}
	if sig1 == c.sign(map[string]string{"public_id": "p", "timestamp": "101"}) {
		t.Fatalf("signature ignores timestamp")
	}
}
