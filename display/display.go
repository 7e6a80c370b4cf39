// Package display abstracts the platform surface for reading and writing
// per-display gamma transfer tables.
package display

import "github.com/tintd/tintd/gamma"

// ID is a stable identifier for a physical display for the duration of the
// session. On X11 this is the RandR output name (e.g. "eDP-1").
type ID string

// Backend enumerates displays and reads/writes their gamma tables. Writes
// are synchronous and non-retrying. A Backend is safe for concurrent use.
type Backend interface {
	// Displays returns the currently connected displays.
	Displays() ([]ID, error)

	// ReadGamma reads the display's current gamma table. It fails for
	// displays whose gamma tables cannot be read (virtual or otherwise
	// unsupported outputs).
	ReadGamma(ID) (*gamma.Table, error)

	// WriteGamma writes the table to the display. The table's size must
	// match the size reported by the hardware.
	WriteGamma(ID, *gamma.Table) error

	// Close releases the connection to the display server.
	Close()
}
