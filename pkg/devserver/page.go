package devserver

import (
	"strings"

	"github.com/rohanthewiz/element"

	"github.com/AndreasArvidsson/jRouter/pkg/router"
)

// Link is one navbar entry of the generated shell page.
type Link struct {
	Href  string
	Label string
}

// LinksFromTable returns a navbar entry for every route without parameters,
// in registration order. The "404" route is skipped.
func LinksFromTable(table *router.Table) []Link {
	var links []Link
	for _, route := range table.Routes() {
		if route.Params > 0 || route.Pattern == router.NotFoundPattern {
			continue
		}
		label := strings.Trim(route.Pattern, router.Separator)
		if label == "" {
			label = "Home"
		}
		links = append(links, Link{Href: "#" + route.Pattern, Label: label})
	}
	return links
}

// selectorAttr turns a simple "#id" or ".class" selector into an attribute
// pair. Anything else falls back to fallback as an id.
func selectorAttr(selector, fallback string) (string, string) {
	switch {
	case strings.HasPrefix(selector, "#") && len(selector) > 1:
		return "id", selector[1:]
	case strings.HasPrefix(selector, ".") && len(selector) > 1:
		return "class", selector[1:]
	}
	return "id", fallback
}

// shellPage renders the page hosting the navbar and the content container.
func shellPage(title, navSelector, target string, links []Link) string {
	navKey, navVal := selectorAttr(navSelector, "nav")
	targetKey, targetVal := selectorAttr(target, "content")

	b := element.NewBuilder()
	b.Html().R(
		b.Head().R(
			b.Title().T(title),
			b.Style().T(`
				body { font-family: system-ui, sans-serif; max-width: 960px; margin: 0 auto; padding: 20px; }
				nav a { margin-right: 12px; }
				nav a.active { font-weight: bold; }
			`),
		),
		b.Body().R(
			b.Nav(navKey, navVal).R(
				navLinks(b, links),
			),
			b.Div(targetKey, targetVal).R(),
		),
	)
	return "<!DOCTYPE html>\n" + b.String()
}

func navLinks(b *element.Builder, links []Link) any {
	for _, l := range links {
		b.A("href", l.Href).T(l.Label)
	}
	return nil
}

// injectScript inserts script before </body>, or before </html>, or at the end.
func injectScript(page, script string) string {
	if idx := strings.LastIndex(page, "</body>"); idx != -1 {
		return page[:idx] + script + page[idx:]
	}
	if idx := strings.LastIndex(page, "</html>"); idx != -1 {
		return page[:idx] + script + page[idx:]
	}
	return page + script
}
