// Package notify implements the per-task notification hub. A Hub keeps an
// ordered list of subscribers and broadcasts status-change text to them
// synchronously.
package notify
