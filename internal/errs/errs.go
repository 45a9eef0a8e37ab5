// Package errs defines the domain error taxonomy of the API.
//
// Services and handlers return *HTTPError values (NotFound, BadRequest,
// Unauthorized, Forbidden, Conflict, TooManyRequests, InternalServerError)
// and the global error handler is the single place that turns them into
// the `{error, message, details}` envelope sent to clients.
package errs
