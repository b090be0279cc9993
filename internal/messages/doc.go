// Package messages defines how results reach the user in nodedash.
//
// # Layers
//
// The cluster layer (internal/k8s) returns plain Go errors wrapped with
// context, using WrapError or fmt.Errorf("...: %w", err). Typed categories
// from internal/errdef survive the wrapping and are checked with errors.As.
//
// Screens (internal/nodes) turn failures into a tea.Cmd producing a
// types.StatusMsg:
//
//	return messages.ErrorCmd("Failed to delete node %s: %v", name, err)
//
// The app (internal/app) is the only place StatusMsg is rendered. Errors are
// also written to the log there, so screens do not log them again.
//
// Success notifications go through StatusNotifier, which the screens receive
// as an interface and can be replaced in tests.
//
// # Guidelines
//
// Keep messages short and name the resource: "Failed to delete node worker-1"
// rather than "Operation failed".
package messages
