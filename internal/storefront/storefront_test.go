package storefront_test

import (
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	RequestID   string
	Body        []byte
	Form        map[string]string
}

// fakeStorefront records every request and answers with the registered
// handler for its path.
type fakeStorefront struct {
	mu       sync.Mutex
	requests []recordedRequest
	handlers map[string]http.HandlerFunc
}

func startStorefront() (*httptest.Server, *fakeStorefront) {
	fake := &fakeStorefront{handlers: map[string]http.HandlerFunc{}}
	return httptest.NewServer(fake), fake
}

func (f *fakeStorefront) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get("X-Request-Id"),
	}

	mediaType, _, _ := mime.ParseMediaType(rec.ContentType)
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			rec.Form = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				rec.Form[k] = strings.Join(v, ",")
			}
		}
	} else {
		rec.Body, _ = io.ReadAll(r.Body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	h, ok := f.handlers[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

func (f *fakeStorefront) handle(path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[path] = h
}

func (f *fakeStorefront) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = nil
	f.handlers = map[string]http.HandlerFunc{}
}

func (f *fakeStorefront) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func respondJSON(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = io.WriteString(w, body)
	}
}
