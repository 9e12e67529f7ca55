package foodsoft

import (
	"io"

	"golang.org/x/net/html"
)

// csrfToken extracts the Rails authenticity token from a page. The meta tag
// is preferred; the hidden form input is the fallback.
func csrfToken(r io.Reader) (string, bool) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", false
	}

	var meta, input string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				if attr(n, "name") == "csrf-token" && meta == "" {
					meta = attr(n, "content")
				}
			case "input":
				if attr(n, "name") == "authenticity_token" && input == "" {
					input = attr(n, "value")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if meta != "" {
		return meta, true
	}
	return input, input != ""
}

// hasLoginForm reports whether a page contains the login form.
func hasLoginForm(r io.Reader) bool {
	doc, err := html.Parse(r)
	if err != nil {
		return false
	}
	var found bool
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode && n.Data == "input" && attr(n, "name") == "nick" {
			found = true
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
