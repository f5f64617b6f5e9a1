// Package driving defines interfaces that external actors (CLI, MCP) use
// to interact with core services. These are the "driving" ports in hexagonal
// architecture terminology - they drive the application.
//
// The ports cover index building (ContextBuilder), signal collection
// (SignalCollector), section validation (ReadmeValidator), and
// configuration (SettingsService). Implementations live in
// internal/core/services.
package driving
