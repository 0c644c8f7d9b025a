// Package navigation drives the content-loading lifecycle around route matches.
//
// A Router owns one navigation state: the current parameters, the last
// loaded match and, after a pre-check veto, the halted match. Each location
// change is dispatched through the route table, an optional pre hook, and the
// content loader:
//
//	Idle → Dispatching → {Loading, Halted, NotFound}
//	Loading → {Loaded, LoadFailed} → Idle
//	Halted → Loading (on Resume)
//
// # Collaborators
//
// The router does not touch a browser. It reads and writes the current path
// through a LocationSource, fetches route targets with a ContentLoader and
// shows them through a Renderer. A NavHighlighter and Formatter are optional.
//
// # Usage
//
//	table := router.NewTable()
//	table.MustRegister("/", "home.html")
//	table.MustRegister("/users/{id:\\d+}", "user.html")
//	table.MustRegister("404", "not-found.html")
//
//	nav, err := navigation.New(&navigation.Config{
//	    Table:    table,
//	    Location: navigation.NewMemoryLocation(""),
//	    Loader:   loader.NewFS(os.DirFS("pages")),
//	    Renderer: renderer,
//	}, navigation.WithHooks(navigation.Hooks{
//	    Pre: func(m *router.MatchResult) navigation.Decision {
//	        if unsaved { return navigation.Veto }
//	        return navigation.Continue
//	    },
//	}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	nav.Start(ctx)
//
// # Concurrent dispatches
//
// The latest dispatch wins. Entering Loading cancels the context of any
// fetch still in flight, and a fetch that completes after being superseded
// is discarded without rendering or firing hooks.
package navigation
