package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/ui-showcase/internal/catalog"
	"github.com/ziadkadry99/ui-showcase/internal/loader"
	"github.com/ziadkadry99/ui-showcase/internal/panel"
)

type countingReporter struct{ updates, failed int }

func (r *countingReporter) Start(int) {}
func (r *countingReporter) Update(_ int, _ string, err error) {
	r.updates++
	if err != nil {
		r.failed++
	}
}
func (r *countingReporter) Finish()       {}
func (r *countingReporter) Failures() int { return r.failed }

func TestCheckAll(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/components/ok.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<button>ok</button>`))
	})
	mux.HandleFunc("/components/gone.html", http.NotFound)
	mux.HandleFunc("/info.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<div id="about">About</div>`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>` + loader.DefaultShellTitle + `</head></html>`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	cat := catalog.MustNew([]catalog.Category{{
		Name: "landing",
		Components: []catalog.Descriptor{
			{ID: "ok", Name: "OK", Path: "/components/ok.html"},
			{ID: "gone", Name: "Gone", Path: "/components/gone.html"},
			{ID: "masked", Name: "Masked", Path: "/demos/masked.html"},
		},
	}})
	defs := []panel.Definition{
		{ID: "about", Source: "/info.html"},
		{ID: "missing", Source: "/info.html"},
	}

	fetcher, err := loader.NewHTTPFetcher(ts.URL)
	if err != nil {
		t.Fatalf("NewHTTPFetcher: %v", err)
	}
	rep := &countingReporter{}
	failures, err := checkAll(context.Background(), fetcher, loader.DefaultShellTitle, cat, defs, rep, zerolog.Nop())
	if err != nil {
		t.Fatalf("checkAll: %v", err)
	}

	if rep.updates != 5 || rep.failed != 3 {
		t.Errorf("expected 5 updates with 3 failures, got %d and %d", rep.updates, rep.failed)
	}
	want := map[string]loader.Kind{
		"/components/gone.html": loader.KindNotFound,
		"/demos/masked.html":    loader.KindMaskedRedirect,
		"/info.html#missing":    loader.KindElementMissing,
	}
	if len(failures) != len(want) {
		t.Fatalf("expected %d failures, got %d: %+v", len(want), len(failures), failures)
	}
	for _, f := range failures {
		if want[f.Target] != f.Kind {
			t.Errorf("%s: expected kind %q, got %q", f.Target, want[f.Target], f.Kind)
		}
	}
}

func TestPrintCatalog(t *testing.T) {
	cat := catalog.MustNew([]catalog.Category{
		{Name: "buttons", Components: []catalog.Descriptor{
			{ID: "primary", Name: "Primary", Path: "/components/buttons/primary.html", Tags: []string{"cta", "blue"}},
		}},
		{Name: "empty"},
	})

	var buf bytes.Buffer
	if err := printCatalog(&buf, cat); err != nil {
		t.Fatalf("printCatalog: %v", err)
	}
	out := buf.String()
	for _, s := range []string{"primary", "cta,blue", "(empty)", "1 components in 2 categories"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}
