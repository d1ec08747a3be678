package sources

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

type pageMeta struct {
	Title       string
	Description string
}

// parseWatchPageMeta reads title and description from the watch page <meta>
// tags. Used when ytInitialPlayerResponse is missing or lacks videoDetails.
func parseWatchPageMeta(body []byte) pageMeta {
	var m pageMeta
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return m
	}

	var docTitle string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				key := attr(n, "property")
				if key == "" {
					key = attr(n, "name")
				}
				content := strings.TrimSpace(attr(n, "content"))
				switch key {
				case "og:title", "title":
					if m.Title == "" {
						m.Title = content
					}
				case "og:description", "description":
					if m.Description == "" {
						m.Description = content
					}
				}
			case "title":
				if n.FirstChild != nil && docTitle == "" {
					docTitle = strings.TrimSpace(n.FirstChild.Data)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if m.Title == "" {
		m.Title = strings.TrimSuffix(docTitle, " - YouTube")
	}
	return m
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
