// Package devserver serves a jRouter site to browsers during development.
//
// Every browser tab connects to /ws and gets its own navigation.Router,
// driven through a bridge.Conn. All tabs share one route table and one
// content loader.
//
// Endpoints:
//
//	GET /                 shell page with navbar, content container and client script
//	GET /ws               bridge WebSocket
//	GET /_fragments/*     raw route targets from the loader
//	GET /_routes          registered routes as JSON
//	GET /static/*         files from the static directory, when configured
//	GET /metrics          Prometheus metrics, when enabled
package devserver
