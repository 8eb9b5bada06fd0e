// Package server provides HTTP routing, middleware, and the reciprocity backend handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Middleware
//
//   - [WithCORS]: allows any origin and answers preflights with 204
//   - [WithLogger]: assigns an X-Request-Id and writes one access log line per request
//   - [WithRateLimit]: shared token bucket, 429 when exhausted
//   - [WithBearerAuth]: optional static bearer token, 401 otherwise
//
// # Backend Endpoints
//
//	POST /upload  → multipart followers_file + following_file, answers {"not_following_back": [...], "not_followed_by": [...]}
//	GET  /health  → {"status": "ok"}
//
// Uploaded files are discarded once the response is written. When a recorder is configured,
// only the list sizes of each analysis are stored.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
