package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.pdf")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRecognizeSendsFileAndReturnsText(t *testing.T) {
	path := writeFixture(t, "%PDF-1.4 fake scan")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/recognize" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			Filename string `json:"filename"`
			Content  string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Filename != "scan.pdf" {
			t.Fatalf("unexpected filename %s", req.Filename)
		}
		raw, err := base64.StdEncoding.DecodeString(req.Content)
		if err != nil || string(raw) != "%PDF-1.4 fake scan" {
			t.Fatalf("unexpected content %q err=%v", raw, err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "  Invoice INV-2024-001  "})
	}))
	defer server.Close()

	client := New(server.URL, nil)
	text, err := client.Recognize(context.Background(), path)
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if text != "Invoice INV-2024-001" {
		t.Fatalf("expected trimmed text, got %q", text)
	}
}

func TestRecognizeServerErrorIsTemporary(t *testing.T) {
	path := writeFixture(t, "scan")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "engine busy", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, nil)
	_, err := client.Recognize(context.Background(), path)
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error, got %v", err)
	}
}

func TestRecognizeMissingFile(t *testing.T) {
	client := New("http://127.0.0.1:1", nil)
	if _, err := client.Recognize(context.Background(), "/nonexistent/scan.pdf"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
