// Package services implements the driving port interfaces.
//
// ContextIndexer builds the section-to-context index, SignalCollector
// runs analyzers over the scanned manifest, HallucinationValidator
// checks rendered sections against indexed evidence, and
// SettingsService resolves configuration. Services orchestrate calls
// to driven ports and never touch infrastructure directly.
package services
