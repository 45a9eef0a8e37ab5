// Package service contains the business logic.
//
// It sits between the handler and repository layers. Services receive
// validated payloads plus the caller's user id, verify the caller owns every
// resource on the path, and return either the affected rows or an
// *errs.HTTPError. Database errors that are not ownership related are
// returned unchanged for the global error handler to classify.
package service
