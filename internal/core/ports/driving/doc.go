// Package driving defines the inbound ports of the hexagon: the interfaces
// external actors (the CLI today) use to drive Huddle's core services.
package driving
