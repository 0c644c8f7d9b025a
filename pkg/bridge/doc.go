// Package bridge connects a browser tab to a navigation.Router over a
// WebSocket.
//
// A Conn plays the three browser-side collaborators of the router: it is
// the LocationSource (the tab's address fragment), the Renderer (the target
// container) and the NavHighlighter (the navbar). The browser runs
// ClientScript, which reports fragment changes and applies the commands it
// receives.
//
// Protocol (JSON text frames):
//
//	browser -> server  {"type":"hashchange","path":"/users/7"}
//	                   {"type":"init"}
//	server -> browser  {"type":"location","path":"/","silent":true}
//	                   {"type":"render","html":"<p>...</p>"}
//	                   {"type":"clear"}
//	                   {"type":"scrollTop"}
//	                   {"type":"highlight","href":"#/users/7"}
//
// The first hashchange after connecting carries the tab's initial path.
// An init message is sent by jRouter.init() in the page and starts routing
// when the server was configured not to start on connect.
// A hashchange for the path the server already holds is ignored, which
// absorbs the browser's echo of every location command.
package bridge
