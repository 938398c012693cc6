// Package site serves the showcase shell page and the component demos.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/ui-showcase/internal/panel"
)

// ContentPrefix is the URL prefix under which the content directory is served.
const ContentPrefix = "/components/"

// ShellData is the data rendered into the shell page.
type ShellData struct {
	Title      string
	Dark       bool
	Components int
	Categories int
	Panels     []panel.Definition
}

// Shell renders the shell page.
type Shell struct {
	tmpl *template.Template
}

// NewShell parses the shell template.
func NewShell() (*Shell, error) {
	tmpl, err := template.New("shell").Parse(shellTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing shell template: %w", err)
	}
	return &Shell{tmpl: tmpl}, nil
}

// Render writes the shell page for data.
func (s *Shell) Render(w http.ResponseWriter, data ShellData) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// AssetHandler serves the shell stylesheet and script.
func AssetHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch path.Base(r.URL.Path) {
		case "style.css":
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
			w.Write([]byte(cssContent))
		case "script.js":
			w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
			w.Write([]byte(jsContent))
		default:
			http.NotFound(w, r)
		}
	})
}

// Content serves demo files from a directory. HTML documents get the dark
// root class when the requesting client prefers the dark theme, so a frame
// is themed from its first paint.
type Content struct {
	fsys    fs.FS
	files   http.Handler
	darkFor func(*http.Request) bool
	logger  zerolog.Logger
}

// NewContent serves dir under ContentPrefix. darkFor may be nil.
func NewContent(dir string, darkFor func(*http.Request) bool, logger zerolog.Logger) *Content {
	return NewContentFS(os.DirFS(dir), darkFor, logger)
}

// NewContentFS is NewContent over an arbitrary file system.
func NewContentFS(fsys fs.FS, darkFor func(*http.Request) bool, logger zerolog.Logger) *Content {
	return &Content{
		fsys:    fsys,
		files:   http.StripPrefix(strings.TrimSuffix(ContentPrefix, "/"), http.FileServerFS(fsys)),
		darkFor: darkFor,
		logger:  logger,
	}
}

func (c *Content) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), ContentPrefix)
	if !isHTML(name) || c.darkFor == nil || !c.darkFor(r) {
		c.files.ServeHTTP(w, r)
		return
	}

	data, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		c.files.ServeHTTP(w, r)
		return
	}
	out, err := InjectRootClass(data, "dark")
	if err != nil {
		c.logger.Debug().Err(err).Str("path", name).Msg("serving without theme class")
		out = data
	}
	w.Header().Set("Content-Type", mime.TypeByExtension(path.Ext(name)))
	w.Header().Set("Cache-Control", "no-store")
	w.Write(out)
}

func isHTML(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".html" || ext == ".htm"
}
