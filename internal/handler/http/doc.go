// Package http is the server's REST transport.
//
// It wires the chi router, decodes requests, and maps service errors to
// status codes and the app.Msg* bodies the client adapter understands.
// Every vault route sits behind the bearer-token middleware, which puts the
// caller's owner id into the request context; handlers never take an owner
// id from the request itself.
package http
