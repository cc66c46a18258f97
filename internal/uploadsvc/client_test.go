package uploadsvc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tubescout/pkg/httputil"
)

func TestAuthorize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/authorize" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("channel"); got != "my channel" {
			t.Errorf("channel = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(`{"auth_url":"https://accounts.example.com/consent"}`))
	}))
	defer server.Close()

	c := NewClient(context.Background(), server.URL+"/", "secret")
	got, err := c.Authorize(context.Background(), "my channel")
	if err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}
	if got != "https://accounts.example.com/consent" {
		t.Errorf("Authorize() = %q", got)
	}
}

func TestAuthorizeEmptyURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	if _, err := newClient(server.URL, server.Client()).Authorize(context.Background(), ""); err == nil {
		t.Error("Authorize() expected error for empty auth_url")
	}
}

func TestChannels(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bareArray", body: `[{"id":"UC1","title":"One"},{"id":"UC2","title":"Two"}]`},
		{name: "wrapped", body: `{"channels":[{"id":"UC1","title":"One"},{"id":"UC2","title":"Two"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			got, err := newClient(server.URL, server.Client()).Channels(context.Background())
			if err != nil {
				t.Fatalf("Channels() error = %v", err)
			}
			if len(got) != 2 || got[1].ID != "UC2" {
				t.Errorf("Channels() = %+v", got)
			}
		})
	}
}

func TestUploadURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/upload-url" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["file_name"] != "clip.mp4" {
			t.Errorf("file_name = %q", req["file_name"])
		}
		_, _ = w.Write([]byte(`{"upload_url":"https://storage.example.com/signed","storage_path":"uploads/clip.mp4"}`))
	}))
	defer server.Close()

	got, err := newClient(server.URL, server.Client()).UploadURL(context.Background(), "clip.mp4", "video/mp4")
	if err != nil {
		t.Fatalf("UploadURL() error = %v", err)
	}
	if got.StoragePath != "uploads/clip.mp4" || got.UploadURL != "https://storage.example.com/signed" {
		t.Errorf("UploadURL() = %+v", got)
	}
}

func TestPublishPassesMetadataThrough(t *testing.T) {
	meta := Metadata{
		ChannelID:   "UC1",
		Title:       "  Título con espacios  ",
		Description: "line1\nline2",
		Privacy:     "unlisted",
		Tags:        []string{"Gato", "lofi"},
		CategoryID:  "10",
		StoragePath: "uploads/clip.mp4",
	}
	reply := `{"id":"abc123","status":{"privacyStatus":"unlisted"}}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got Metadata
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
			return
		}
		if got.Title != meta.Title || got.Description != meta.Description || got.Tags[0] != "Gato" {
			t.Errorf("metadata changed in transit: %+v", got)
		}
		_, _ = w.Write([]byte(reply))
	}))
	defer server.Close()

	got, err := newClient(server.URL, server.Client()).Publish(context.Background(), meta)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if string(got) != reply {
		t.Errorf("Publish() = %s, want %s", got, reply)
	}
}

func TestPublishRelaysErrorText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "channel not authorized", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newClient(server.URL, server.Client()).Publish(context.Background(), Metadata{})
	if err == nil {
		t.Fatal("Publish() expected error")
	}
	if httputil.StatusCode(err) != http.StatusForbidden {
		t.Errorf("status = %d, want 403", httputil.StatusCode(err))
	}
	if !strings.Contains(err.Error(), "channel not authorized") {
		t.Errorf("error = %q, want relayed body text", err.Error())
	}
}

func TestPutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("video bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	var got []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "video/mp4" {
			t.Errorf("Content-Type = %q", ct)
		}
		got, _ = io.ReadAll(r.Body)
	}))
	defer server.Close()

	c := newClient(server.URL, server.Client())
	if err := c.PutFile(context.Background(), server.URL+"/signed", path, "video/mp4"); err != nil {
		t.Fatalf("PutFile() error = %v", err)
	}
	if string(got) != "video bytes" {
		t.Errorf("uploaded %q", got)
	}
}

func TestPutFileMissing(t *testing.T) {
	c := newClient("http://127.0.0.1:0", http.DefaultClient)
	if err := c.PutFile(context.Background(), "http://127.0.0.1:0", filepath.Join(t.TempDir(), "nope"), ""); err == nil {
		t.Error("PutFile() expected error for missing file")
	}
}
