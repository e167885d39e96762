package fetcher

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f := New(5 * time.Second)
	body, err := f.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(body) != "<html>ok</html>" {
		t.Errorf("body = %q", body)
	}
}

func TestGetRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(5 * time.Second)
	if _, err := f.Get(srv.URL); err == nil {
		t.Fatal("Get() succeeded on 404")
	}
}

func TestGetResponseKeepsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	f := New(5 * time.Second)
	resp, err := f.GetResponse(srv.URL)
	if err != nil {
		t.Fatalf("GetResponse() failed: %v", err)
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if resp.OK() {
		t.Error("OK() = true for 429")
	}
	if string(resp.Body) != "slow down" {
		t.Errorf("body = %q", resp.Body)
	}
	if resp.ContentType != "text/plain" {
		t.Errorf("content type = %q", resp.ContentType)
	}
}

func TestUserAgentHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := New(5 * time.Second)
	f.UserAgent = "corpus-test/1.0"
	if _, err := f.Get(srv.URL); err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != "corpus-test/1.0" {
		t.Errorf("user agent = %q", got)
	}
}

func TestGetTransportError(t *testing.T) {
	f := New(time.Second)
	if _, err := f.Get("http://127.0.0.1:1"); err == nil {
		t.Fatal("Get() succeeded against a closed port")
	}
}
