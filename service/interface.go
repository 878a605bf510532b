// Package service runs long-lived subsystems (audio output, web stream) beside a driver.
package service

// Service is a subsystem with an explicit lifecycle:
// construct, Init with parsed settings, Start, then Stop on shutdown
type Service interface {
	// Name identifies the service within a Group
	Name() string

	// Dependencies names services that must Init and Start first; nil for none
	Dependencies() []string

	// Init applies service-specific settings (mute flag, listen address)
	Init(args ...any) error

	// Start launches background work; called once every service has initialized
	Start() error

	// Stop releases resources; calling it again is a no-op
	Stop() error
}
