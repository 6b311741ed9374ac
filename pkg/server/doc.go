// Package server exposes a viewer engine over HTTP and WebSocket.
//
// # Architecture
//
// A [Session] owns one [viewer.Engine] and is its single mutation entry
// point: HTTP handlers, the file watcher and anything else that changes
// visible state go through [Session.Do] or [Session.Load], which serialize
// on one mutex. After every state change the session pushes a fresh
// [present.Scene] to the [Hub], which fans it out to connected WebSocket
// clients. Slow clients skip messages instead of blocking the engine.
//
// # Routes
//
//	GET  /healthz
//	GET  /api/graph                          title and size of the loaded document
//	GET  /api/state                          current scene
//	GET  /api/search?q=&limit=               free-text node search
//	POST /api/nodes/{id}/reveal
//	POST /api/nodes/{id}/expand-upstream
//	POST /api/nodes/{id}/expand-downstream
//	PUT  /api/nodes/{id}/position            body {"x": 1, "y": 2}
//	PUT  /api/selection                      body {"id": "..."}; empty id clears
//	POST /api/selection/toggle               body {"id": "..."}
//	GET  /api/ws                             scene stream
//
// Mutations respond with the resulting scene. Errors are JSON objects
// {"code", "message"}; NOT_FOUND maps to 404 and invalid input to 400.
//
// # Live Reload
//
// [WatchFile] watches a graph document and calls back after it changed.
// The serve command uses it to reload the session, which (with
// [viewer.WithKeepVisibleOnLoad]) keeps the user's layout for nodes that
// still exist.
package server
