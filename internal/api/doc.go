// Package api contains the HTTP transport layer: chi handlers for
// generation requests, task polling, essays, study stats and Anki export,
// plus the error-to-status mapping that keeps internal details out of
// responses.
package api
