// Package services implements Huddle's core behaviour: document synthesis,
// the semantic index, intent classification, and the answering assistant.
// Services depend on ports, never on concrete adapters.
package services
