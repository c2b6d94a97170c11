// Package dom provides a small headless document model for formkit
// components. A Document wraps a parsed HTML tree together with an event
// registry, the files selected on file inputs, the focused element and a log
// of scroll requests, so form behaviours can run and be asserted without a
// browser.
//
// Documents are not safe for concurrent use. Hosts dispatch events one at a
// time, the same way a browser event loop would.
package dom
