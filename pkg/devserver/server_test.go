package devserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AndreasArvidsson/jRouter/pkg/bridge"
	"github.com/AndreasArvidsson/jRouter/pkg/loader"
	"github.com/AndreasArvidsson/jRouter/pkg/metrics"
	"github.com/AndreasArvidsson/jRouter/pkg/navbar"
	"github.com/AndreasArvidsson/jRouter/pkg/router"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	table := router.NewTable()
	table.MustRegister("/", "home.html")
	table.MustRegister("/about", "about.html")
	table.MustRegister("/users/{id}", "user.html")
	table.MustRegister("404", "404.html")

	return Options{
		Table: table,
		Loader: loader.NewFS(fstest.MapFS{
			"home.html":  {Data: []byte("<p>home</p>")},
			"about.html": {Data: []byte("<p>about</p>")},
			"user.html":  {Data: []byte("<p>user</p>")},
			"404.html":   {Data: []byte("<p>missing</p>")},
		}),
		Client: bridge.ClientConfig{
			Target: "#content",
			Navbar: navbar.Options{Selector: "#nav"},
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newTestServer(t *testing.T, opts Options) (*Server, *httptest.Server) {
	t.Helper()
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestNewRequiresTableAndLoader(t *testing.T) {
	if _, err := New(Options{Loader: loader.NewFS(fstest.MapFS{})}); err == nil {
		t.Error("expected error without table")
	}
	if _, err := New(Options{Table: router.NewTable()}); err == nil {
		t.Error("expected error without loader")
	}
}

func TestIndexPage(t *testing.T) {
	_, ts := newTestServer(t, testOptions(t))

	status, body := get(t, ts.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	for _, want := range []string{"<!DOCTYPE html>", "#/about", "content", "<script>", `"selector":"#nav"`} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
	if strings.Contains(body, "#/users/{id}") {
		t.Error("parameterized route listed in navbar")
	}
	if strings.Index(body, "<script>") > strings.LastIndex(body, "</body>") {
		t.Error("client script not injected before </body>")
	}
}

func TestCustomIndex(t *testing.T) {
	opts := testOptions(t)
	opts.Index = []byte("<html><body><div id=\"content\"></div></body></html>")
	_, ts := newTestServer(t, opts)

	_, body := get(t, ts.URL+"/")
	if !strings.HasPrefix(body, "<html><body><div id=\"content\"></div><script>") {
		t.Errorf("custom index = %s", body)
	}
}

func TestRoutesEndpoint(t *testing.T) {
	_, ts := newTestServer(t, testOptions(t))

	_, body := get(t, ts.URL+"/_routes")
	var routes []routeInfo
	if err := json.Unmarshal([]byte(body), &routes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(routes) != 4 || routes[2].Pattern != "/users/{id}" || routes[2].Seq != 2 {
		t.Errorf("routes = %+v", routes)
	}
}

func TestFragmentEndpoint(t *testing.T) {
	_, ts := newTestServer(t, testOptions(t))

	status, body := get(t, ts.URL+"/_fragments/about.html")
	if status != http.StatusOK || body != "<p>about</p>" {
		t.Errorf("about.html = %d %q", status, body)
	}

	status, _ = get(t, ts.URL+"/_fragments/nope.html")
	if status != http.StatusNotFound {
		t.Errorf("nope.html status = %d, want 404", status)
	}
}

func readMessage(t *testing.T, ws *websocket.Conn) bridge.Message {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg bridge.Message
	if err := ws.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func dialWS(t *testing.T, ts *httptest.Server, initial string) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	if err := ws.WriteJSON(bridge.Message{Type: bridge.TypeHashChange, Path: initial}); err != nil {
		t.Fatal(err)
	}
	return ws
}

// renderedHTML reads messages until a render and returns its html.
func renderedHTML(t *testing.T, ws *websocket.Conn) string {
	t.Helper()
	for i := 0; i < 5; i++ {
		msg := readMessage(t, ws)
		if msg.Type == bridge.TypeRender {
			return msg.HTML
		}
	}
	t.Fatal("no render message")
	return ""
}

func TestWebSocketNavigation(t *testing.T) {
	reg := prometheus.NewRegistry()
	opts := testOptions(t)
	opts.Metrics = metrics.New(metrics.WithRegistry(reg), metrics.WithNamespace("test"))
	opts.Gatherer = reg
	s, ts := newTestServer(t, opts)

	ws := dialWS(t, ts, "/about")
	if html := renderedHTML(t, ws); html != "<p>about</p>" {
		t.Errorf("initial render = %q", html)
	}
	if s.ConnCount() != 1 {
		t.Errorf("ConnCount() = %d, want 1", s.ConnCount())
	}

	ws.WriteJSON(bridge.Message{Type: bridge.TypeHashChange, Path: "/nowhere"})
	if html := renderedHTML(t, ws); html != "<p>missing</p>" {
		t.Errorf("fallback render = %q", html)
	}

	_, body := get(t, ts.URL+"/metrics")
	if !strings.Contains(body, `test_dispatches_total{outcome="loaded"} 1`) {
		t.Errorf("metrics missing loaded dispatch:\n%s", body)
	}
	if !strings.Contains(body, `test_dispatches_total{outcome="fallback"} 1`) {
		t.Errorf("metrics missing fallback dispatch:\n%s", body)
	}
}

func TestWebSocketManualStart(t *testing.T) {
	opts := testOptions(t)
	opts.Manual = true
	_, ts := newTestServer(t, opts)

	ws := dialWS(t, ts, "/about")

	ws.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	var msg bridge.Message
	if err := ws.ReadJSON(&msg); err == nil {
		t.Fatalf("received %+v before init", msg)
	}

	// A read timeout poisons a gorilla connection; reconnect.
	ws = dialWS(t, ts, "/about")
	ws.WriteJSON(bridge.Message{Type: bridge.TypeInit})
	if html := renderedHTML(t, ws); html != "<p>about</p>" {
		t.Errorf("render after init = %q", html)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, err := New(testOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	status, _ := get(t, "http://"+ln.Addr().String()+"/")
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
}
