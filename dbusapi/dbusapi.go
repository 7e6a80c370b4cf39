// Package dbusapi exposes the engine on the session bus and provides the
// client used by the CLI.
package dbusapi

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/tintd/tintd/display"
	"github.com/tintd/tintd/engine"
	"github.com/tintd/tintd/gamma"
	"github.com/tintd/tintd/solar"
)

const (
	BusName   = "org.tintd"
	Path      = dbus.ObjectPath("/org/tintd")
	Interface = "org.tintd.Display"
)

// Service exports the engine's operations on the session bus.
type Service struct {
	conn     *dbus.Conn
	engine   *engine.Engine
	schedule *solar.Schedule // nil when no solar schedule is configured
	logger   *slog.Logger
}

// Listen connects to the session bus, claims BusName, and exports the
// engine. schedule may be nil.
func Listen(eng *engine.Engine, schedule *solar.Schedule, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("request name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return nil, fmt.Errorf("%s is already owned, is another tintd running?", BusName)
	}

	s := &Service{conn: conn, engine: eng, schedule: schedule, logger: logger}
	if err := conn.Export(s, Path, Interface); err != nil {
		conn.Close()
		return nil, fmt.Errorf("export: %w", err)
	}
	node := &introspect.Node{
		Name: string(Path),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{Name: Interface, Methods: introspect.Methods(s)},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), Path, "org.freedesktop.DBus.Introspectable"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("export introspection: %w", err)
	}

	logger.Info("listening on session bus", "name", BusName)
	return s, nil
}

// Close releases the bus name and connection.
func (s *Service) Close() {
	s.conn.Close()
}

// ListDisplays returns the adjustable displays.
func (s *Service) ListDisplays() ([]string, *dbus.Error) {
	ids := s.engine.Displays()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return names, nil
}

// Set requests an adjustment for one display.
func (s *Service) Set(name string, brightness float64, filter string, intensity float64) *dbus.Error {
	f, err := gamma.ParseFilter(filter)
	if err != nil {
		return dbus.MakeFailedError(err)
	}
	s.engine.Request(display.ID(name), float32(brightness), f, float32(intensity))
	return nil
}

// SetAll requests the same adjustment for every display.
func (s *Service) SetAll(brightness float64, filter string, intensity float64) *dbus.Error {
	f, err := gamma.ParseFilter(filter)
	if err != nil {
		return dbus.MakeFailedError(err)
	}
	for _, id := range s.engine.Displays() {
		s.engine.Request(id, float32(brightness), f, float32(intensity))
	}
	return nil
}

// Get returns a display's current brightness, filter, and intensity.
func (s *Service) Get(name string) (float64, string, float64, *dbus.Error) {
	adj := s.engine.State(display.ID(name))
	return float64(adj.Brightness), adj.Filter.String(), float64(adj.Intensity), nil
}

// Reset restores one display's baseline.
func (s *Service) Reset(name string) *dbus.Error {
	s.engine.Reset(display.ID(name))
	return nil
}

// ResetAll restores every display's baseline.
func (s *Service) ResetAll() *dbus.Error {
	s.engine.ResetAll()
	return nil
}

// NextTransition returns the unix time and kind ("sunrise" or "sunset") of
// the next solar transition, or (0, "") when no schedule is configured.
func (s *Service) NextTransition() (int64, string, *dbus.Error) {
	if s.schedule == nil {
		return 0, "", nil
	}
	at, kind := s.schedule.Next(time.Now())
	if at.IsZero() {
		return 0, "", nil
	}
	return at.Unix(), kind, nil
}
