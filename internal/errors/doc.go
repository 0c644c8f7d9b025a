// Package errors provides structured, coded errors for jRouter.
//
// Every error raised by the router carries a stable code that maps to a
// registered template:
//   - config: setup errors that abort initialization (E001-E099)
//   - registration: invalid route patterns or targets (E101-E199)
//   - load: content fetch failures contained to one navigation (E201-E299)
//   - misuse: non-fatal operator warnings such as resuming with nothing halted (W301-W399)
//   - cli: command line errors (E401-E499)
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetail(`pattern "" has no segments`).
//	    WithSuggestion(`Register("/users/{id}", "users.html")`)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: Invalid route registration
//	//
//	//   pattern "" has no segments
//	//
//	//   Hint: Register("/users/{id}", "users.html")
//
// Codes compare with errors.Is:
//
//	if errors.Is(err, errors.New("E101")) { ... }
package errors
