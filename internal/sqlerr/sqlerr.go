// Package sqlerr translates database driver errors.
//
// It classifies pgconn errors by SQLSTATE into a small Code enum and turns
// them into domain errors: unique violations become 409 Conflict, foreign
// key, not-null, check and undefined-column errors become 400 Bad Request,
// missing rows become 404 and anything else a generic 500.
package sqlerr
