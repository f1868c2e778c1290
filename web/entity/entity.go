// Package entity defines data structures shared by the web layer.
package entity

// Msg is the standard JSON response envelope.
type Msg struct {
	Success bool   `json:"success"` // Indicates if the operation was successful
	Msg     string `json:"msg"`     // Response message text
	Obj     any    `json:"obj"`     // Optional data object
}
