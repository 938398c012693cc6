package site

import (
	"bytes"
	"errors"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InjectRootClass adds class to the <html> element of markup.
func InjectRootClass(markup []byte, class string) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return nil, err
	}
	root := findRoot(doc)
	if root == nil {
		return nil, errors.New("document has no html element")
	}

	idx := slices.IndexFunc(root.Attr, func(a html.Attribute) bool { return a.Key == "class" })
	if idx < 0 {
		root.Attr = append(root.Attr, html.Attribute{Key: "class", Val: class})
	} else {
		classes := strings.Fields(root.Attr[idx].Val)
		if slices.Contains(classes, class) {
			return markup, nil
		}
		root.Attr[idx].Val = strings.Join(append(classes, class), " ")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func findRoot(doc *html.Node) *html.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.DataAtom == atom.Html {
			return n
		}
	}
	return nil
}
