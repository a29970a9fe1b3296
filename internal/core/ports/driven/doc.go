// Package driven defines the outbound ports of the hexagon: the interfaces
// Huddle's core services require from infrastructure adapters.
//
// Implementations live under internal/adapters/driven and
// internal/connectors. Core services depend only on these interfaces,
// never on concrete adapters.
package driven
