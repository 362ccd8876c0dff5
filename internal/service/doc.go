// Package service orchestrates the application's use cases: starting
// asynchronous generation runs, resolving task state, and assembling the
// read models the HTTP layer serves.
package service
