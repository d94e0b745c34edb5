// Package cloudinary talks to the image host. Actual picture bytes only
// ever live there; the backend stores the returned secure URL.
package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Client uploads images to Cloudinary using their REST API. Student-side
// uploads use the unsigned upload-preset path; the API key/secret pair is
// only required for the signed destroy path used by admin deletes.
type Client struct {
	CloudName    string
	UploadPreset string
	APIKey       string
	APISecret    string
	Folder       string
	HTTP         *http.Client

	// BaseURL overrides the Cloudinary API host; empty means the real one.
	BaseURL string
}

// New creates a Cloudinary client.
func New(cloudName, uploadPreset, apiKey, apiSecret, folder string) *Client {
	return &Client{
		CloudName:    cloudName,
		UploadPreset: uploadPreset,
		APIKey:       apiKey,
		APISecret:    apiSecret,
		Folder:       folder,
		HTTP:         &http.Client{Timeout: 30 * time.Second},
	}
}

// UploadResult holds the response from Cloudinary after a successful upload.
type UploadResult struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bytes     int    `json:"bytes"`
}

// UploadBase64 uploads a base64 data URL image via the unsigned preset.
// data may be a full data URL like "data:image/jpeg;base64,..." or raw
// base64; Cloudinary accepts both through the file param.
func (c *Client) UploadBase64(ctx context.Context, data string) (*UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	c.writePresetFields(w)
	_ = w.WriteField("file", data)
	w.Close()
	return c.post(ctx, c.endpoint("image/upload"), &buf, w.FormDataContentType())
}

// UploadBytes uploads raw image bytes via the unsigned preset.
func (c *Client) UploadBytes(ctx context.Context, data []byte, filename string) (*UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	c.writePresetFields(w)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: create form file failed: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("cloudinary: write file failed: %w", err)
	}
	w.Close()
	return c.post(ctx, c.endpoint("image/upload"), &buf, w.FormDataContentType())
}

// Destroy deletes a hosted image by public id. Requires API credentials;
// the request is signed, unlike uploads.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	if c.APIKey == "" || c.APISecret == "" {
		return fmt.Errorf("cloudinary: destroy requires api credentials")
	}
	params := map[string]string{
		"public_id": publicID,
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
		"api_key":   c.APIKey,
	}
	params["signature"] = c.sign(params)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range params {
		_ = w.WriteField(k, v)
	}
	w.Close()

	_, err := c.post(ctx, c.endpoint("image/destroy"), &buf, w.FormDataContentType())
	return err
}

func (c *Client) writePresetFields(w *multipart.Writer) {
	_ = w.WriteField("upload_preset", c.UploadPreset)
	if c.Folder != "" {
		_ = w.WriteField("folder", c.Folder)
	}
}

func (c *Client) endpoint(action string) string {
	base := c.BaseURL
	if base == "" {
		base = "https://api.cloudinary.com"
	}
	return fmt.Sprintf("%s/v1_1/%s/%s", base, c.CloudName, action)
}

func (c *Client) post(ctx context.Context, url string, body io.Reader, contentType string) (*UploadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: create request failed: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cloudinary: request failed (%d): %s", resp.StatusCode, string(raw))
	}

	var result UploadResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("cloudinary: decode response failed: %w", err)
	}
	return &result, nil
}

// sign computes the Cloudinary API signature from the given params.
// api_key and file are excluded from the signature per Cloudinary spec.
func (c *Client) sign(params map[string]string) string {
	excludeKeys := map[string]bool{"api_key": true, "file": true, "resource_type": true}

	pairs := make([]string, 0, len(params))
	for k, v := range params {
		if !excludeKeys[k] && v != "" {
			pairs = append(pairs, k+"="+v)
		}
	}
	sort.Strings(pairs)

	payload := strings.Join(pairs, "&") + c.APISecret
	h := sha1.New()
	h.Write([]byte(payload))
	return fmt.Sprintf("%x", h.Sum(nil))
}
