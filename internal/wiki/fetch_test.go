package wiki

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const godzillaPage = `<html><body>
<div id="siteNotice"><p>Donate today.</p></div>
<div id="bodyContent">
  <p>Godzilla is a <b>kaiju</b>.[1]</p>
  <div class="note"><p>Nested paragraph.</p></div>
  <p>It first appeared in 1954.
</p>
</div>
</body></html>`

func TestExtract(t *testing.T) {
	paras, err := Extract(strings.NewReader(godzillaPage), DefaultSelector)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := []string{
		"Godzilla is a kaiju.[1]",
		"Nested paragraph.",
		"It first appeared in 1954.\n",
	}
	if len(paras) != len(want) {
		t.Fatalf("got %d paragraphs %q, want %d", len(paras), paras, len(want))
	}
	for i := range want {
		if paras[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, paras[i], want[i])
		}
	}
}

func TestExtract_NoContent(t *testing.T) {
	_, err := Extract(strings.NewReader("<html><body><p>x</p></body></html>"), DefaultSelector)
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestClientFetch(t *testing.T) {
	var gotUA string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path != "/wiki/Godzilla" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(godzillaPage))
	}))
	defer srv.Close()

	c := NewClient(Options{UserAgent: "kaijucorpus-test/1.0"})

	art, err := c.Fetch(context.Background(), srv.URL+"/wiki/Godzilla")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if gotUA != "kaijucorpus-test/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if art.Title != "Godzilla" {
		t.Errorf("Title = %q, want Godzilla", art.Title)
	}

	want := "Godzilla is a kaiju.[1]\nNested paragraph.\nIt first appeared in 1954.\n"
	if art.Text() != want {
		t.Errorf("Text() = %q, want %q", art.Text(), want)
	}
}

func TestClientFetch_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(Options{})

	_, err := c.Fetch(context.Background(), srv.URL+"/wiki/Missing")

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", se.StatusCode)
	}
	if !strings.Contains(se.Error(), "/wiki/Missing") {
		t.Errorf("error %q should name the url", se.Error())
	}
}

func TestClientFetch_CustomSelector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(godzillaPage))
	}))
	defer srv.Close()

	c := NewClient(Options{Selector: "#siteNotice"})

	art, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if art.Text() != "Donate today." {
		t.Errorf("Text() = %q", art.Text())
	}
}

func TestClientFetch_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(godzillaPage))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(Options{}).Fetch(ctx, srv.URL)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTitleFromURL(t *testing.T) {
	tests := map[string]string{
		"https://en.wikipedia.org/wiki/King_Kong":               "King_Kong",
		"https://en.wikipedia.org/wiki/Godzilla_vs._Destoroyah": "Godzilla_vs._Destoroyah",
		"https://en.wikipedia.org/wiki/Rodan/":                  "Rodan",
		"Mothra":                                                "Mothra",
	}

	for in, want := range tests {
		if got := TitleFromURL(in); got != want {
			t.Errorf("TitleFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		if r.URL.Path == "/wiki/Missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(Options{HTTPClient: srv.Client()})

	status, err := c.Probe(context.Background(), srv.URL+"/wiki/Godzilla")
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if !strings.HasPrefix(status, "200") {
		t.Errorf("status = %q", status)
	}

	_, err = c.Probe(context.Background(), srv.URL+"/wiki/Missing")
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
}
