// Package driving defines interfaces that external actors (CLI, TUI, web UI)
// use to interact with core services. These are the "driving" ports in
// hexagonal architecture terminology - they drive the application.
//
// Front ends depend only on these interfaces and the domain types; they must
// never reach into raw hosted-service response shapes themselves.
//
// Implementations of these interfaces live in internal/core/services.
package driving
