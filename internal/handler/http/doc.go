// Package http is the inbound HTTP surface of the firmware console backend.
//
// Every endpoint answers with the same JSON envelope:
//
//	{"code": <http status>, "message": "...", "data": {...}, "errors": [...]}
//
// written exactly once per request. Handlers never write error responses
// themselves; they hand the error to the shared boundary in responses.go,
// which maps it to a status code and renders the envelope.
package http
