// Package browser binds a form session to a live page when compiled with
// GOOS=js GOARCH=wasm. Location backs the session's navigator with
// window.location and window.history, and Bridge mirrors the session's
// document into the page, routing submit, help-toggle and popstate events
// back into the session.
package browser
