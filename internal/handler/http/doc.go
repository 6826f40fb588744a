// Package http implements the REST transport of the marketplace.
//
// It exposes route wiring, request handlers, and middleware. Request tracing,
// access logging, response compression, request timeouts and bearer-token
// authorization are handled here before requests are delegated to the
// service layer.
package http
