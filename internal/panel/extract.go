package panel

import (
	"bytes"
	"context"
	"fmt"
	stdhtml "html"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/ui-showcase/internal/loader"
)

// Extractor fetches panel sources and pulls the panel element out of them.
type Extractor struct {
	fetcher loader.Fetcher
	md      goldmark.Markdown
}

// NewExtractor creates an Extractor. Markdown sources (.md) are rendered to
// HTML before extraction.
func NewExtractor(fetcher loader.Fetcher) *Extractor {
	return &Extractor{
		fetcher: fetcher,
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithUnsafe(),
			),
		),
	}
}

// Extract fetches sourcePath and returns the outer HTML of the element whose
// id is panelID. A markdown source without such an element is wrapped whole.
func (x *Extractor) Extract(ctx context.Context, panelID, sourcePath string) (string, error) {
	resp, err := x.fetcher.Fetch(ctx, sourcePath)
	if err != nil {
		return "", &loader.Error{Kind: loader.KindNotFound, Path: sourcePath, Reason: "retrieval failed", Err: err}
	}
	if !resp.OK() {
		return "", &loader.Error{Kind: loader.KindNotFound, Path: sourcePath, Reason: "HTTP status indicates failure", Status: resp.Status}
	}

	body := resp.Body
	isMarkdown := strings.HasSuffix(strings.ToLower(sourcePath), ".md")
	if isMarkdown {
		var buf bytes.Buffer
		if err := x.md.Convert(body, &buf); err != nil {
			return "", fmt.Errorf("rendering %s: %w", sourcePath, err)
		}
		body = buf.Bytes()
	}

	out, err := FindByID(body, panelID)
	if err == nil {
		return out, nil
	}
	if isMarkdown {
		return fmt.Sprintf(`<div id="%s">%s</div>`, stdhtml.EscapeString(panelID), body), nil
	}
	return "", &loader.Error{Kind: loader.KindElementMissing, Path: sourcePath,
		Reason: fmt.Sprintf("component #%s not found", panelID)}
}

// FindByID parses markup and renders the first element with the given id.
func FindByID(markup []byte, id string) (string, error) {
	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parsing markup: %w", err)
	}
	n := findByID(doc, id)
	if n == nil {
		return "", loader.ErrElementMissing
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("rendering #%s: %w", id, err)
	}
	return buf.String(), nil
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// ErrorHTML is the placeholder mounted when a panel cannot be loaded.
func ErrorHTML(panelID string) string {
	return fmt.Sprintf(`<div id="%s" class="panel-error"><p><i class="fas fa-exclamation-triangle"></i> Failed to load component. Please try again.</p></div>`,
		stdhtml.EscapeString(panelID))
}
