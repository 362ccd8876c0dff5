// Package task manages the lifecycle of asynchronous generation requests.
// HTTP handlers create a task, hand its work to the registry, and return
// immediately; clients poll the task snapshot until it reaches a terminal
// state. The registry is the only piece of state mutated from multiple
// goroutines, so every operation on a task is atomic with respect to
// concurrent reads.
package task
