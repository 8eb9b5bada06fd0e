// Package services implements the HTTP client for the reciprocity backend.
//
// # Analyzer Interface
//
// [Analyzer] is what the submission flow and CLI depend on. [BackendService] implements it by
// sending one multipart POST to /upload with the parts followers_file and following_file and
// decoding {"not_following_back": [...], "not_followed_by": [...]}.
//
// # Authentication
//
// [NewHTTPClient] wraps the client with an oauth2 static token source when a backend token is
// configured, so the server's bearer check passes.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrValidation] : a file was not selected; no request was sent
//   - [shared.ErrTransport] : connectivity failure, non-2xx status, or malformed body
//   - [shared.ErrServiceUnavailable] : health check failed
//
// Nothing is retried; the caller decides whether to submit again.
package services
