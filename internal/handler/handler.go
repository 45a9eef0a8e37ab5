// Package handler is the first layer after the router.
//
// Handlers bind and validate requests through the validation package,
// call the service layer with the authenticated caller's id and write the
// success envelope. Errors are returned untouched for the global error
// handler.
package handler
