package navigation

import "github.com/rohanthewiz/element"

// defaultNotFoundHTML renders the message shown when neither a route nor a
// "404" route matches.
func defaultNotFoundHTML() []byte {
	b := element.NewBuilder()
	b.H1().R(
		b.T("Error 404"),
		b.Br(),
		b.Small().T("Page not found"),
	)
	return []byte(b.String())
}
