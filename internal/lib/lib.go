// Package lib holds integrations that do not fit strictly into other layers:
// background jobs (asynq), transactional email (Resend) and the Redis cache.
package lib
