package bridge

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/AndreasArvidsson/jRouter/pkg/navbar"
)

// ClientConfig configures the browser side of the bridge.
type ClientConfig struct {
	// Endpoint is the WebSocket path (default: "/ws").
	Endpoint string `json:"endpoint"`

	// Target is the CSS selector of the content container.
	Target string `json:"target"`

	// Navbar describes the navbar to highlight.
	Navbar navbar.Options `json:"navbar"`
}

// NewUpgrader returns the upgrader used for bridge connections.
// Every origin is accepted; the bridge is meant for development.
func NewUpgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// ClientScript returns the <script> element running the browser side of
// the protocol.
func ClientScript(cfg ClientConfig) string {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "/ws"
	}
	cfg.Navbar.Class = cfg.Navbar.ActiveClass()

	data, err := json.Marshal(cfg)
	if err != nil {
		data = []byte("{}")
	}
	return "<script>\n(function() {\n    var cfg = " + string(data) + ";" + clientScriptBody + "})();\n</script>"
}

const clientScriptBody = `
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var ws = null;

    function currentPath() {
        return location.hash.length ? location.hash.substring(1) : '';
    }

    function send(msg) {
        if (ws && ws.readyState === WebSocket.OPEN) {
            ws.send(JSON.stringify(msg));
        }
    }

    function reportLocation() {
        send({type: 'hashchange', path: currentPath()});
    }

    function target() {
        return document.querySelector(cfg.target);
    }

    function highlight(href) {
        var nav = cfg.navbar.selector ? document.querySelector(cfg.navbar.selector) : null;
        if (!nav) {
            return;
        }
        var cls = cfg.navbar.class;
        nav.querySelectorAll('.' + cls).forEach(function(el) {
            el.classList.remove(cls);
        });
        nav.querySelectorAll('[href$="' + href + '"]').forEach(function(link) {
            (cfg.navbar.parent ? link.parentElement : link).classList.add(cls);
        });
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + cfg.endpoint);

        ws.onopen = function() {
            reconnectDelay = 1000;
            reportLocation();
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }

            var el = target();
            switch (msg.type) {
                case 'location':
                    var hash = '#' + (msg.path || '');
                    if (location.hash !== hash) {
                        location.hash = hash;
                    }
                    break;

                case 'render':
                    if (el) {
                        el.innerHTML = msg.html || '';
                    }
                    break;

                case 'clear':
                    if (el) {
                        el.innerHTML = '';
                    }
                    break;

                case 'scrollTop':
                    window.scrollTo(0, 0);
                    break;

                case 'highlight':
                    highlight(msg.href);
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    window.jRouter = {
        init: function() {
            send({type: 'init'});
        }
    };

    window.addEventListener('hashchange', reportLocation);
    connect();
`
