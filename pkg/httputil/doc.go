// Package httputil provides the response helpers and middleware shared by
// the anchorage HTTP API.
//
// # Responses
//
// [WriteJSON] encodes a value with the given status. [WriteError] maps an
// error to a status using its [errors.Code] and writes an [ErrorBody]:
//
//   - INVALID_*: 400 Bad Request
//   - ANCHOR_*: 422 Unprocessable Entity (a strict build rejected a binding)
//   - NOT_FOUND*: 404 Not Found
//   - oversized bodies: 413 Request Entity Too Large
//   - anything else: 500, with the message hidden from the client
//
// # Middleware
//
// [Observe] reports every request to the registered
// [observability.HTTPHooks]. [RequestLogger] logs one line per request to a
// charmbracelet logger.
//
// [errors.Code]: github.com/matzehuels/anchorage/pkg/errors.Code
// [observability.HTTPHooks]: github.com/matzehuels/anchorage/pkg/observability.HTTPHooks
package httputil
