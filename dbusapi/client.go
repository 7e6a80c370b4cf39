package dbusapi

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

// Client talks to a running tintd over the session bus.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Dial connects to the session bus and binds to the tintd service.
func Dial() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &Client{conn: conn, obj: conn.Object(BusName, Path)}, nil
}

func (c *Client) Close() {
	c.conn.Close()
}

func (c *Client) call(method string, args ...any) *dbus.Call {
	return c.obj.Call(Interface+"."+method, 0, args...)
}

// ListDisplays returns the adjustable displays.
func (c *Client) ListDisplays() ([]string, error) {
	var names []string
	if err := c.call("ListDisplays").Store(&names); err != nil {
		return nil, err
	}
	return names, nil
}

// Set requests an adjustment for one display.
func (c *Client) Set(name string, brightness float64, filter string, intensity float64) error {
	return c.call("Set", name, brightness, filter, intensity).Err
}

// SetAll requests the same adjustment for every display.
func (c *Client) SetAll(brightness float64, filter string, intensity float64) error {
	return c.call("SetAll", brightness, filter, intensity).Err
}

// Get returns a display's current brightness, filter, and intensity.
func (c *Client) Get(name string) (brightness float64, filter string, intensity float64, err error) {
	err = c.call("Get", name).Store(&brightness, &filter, &intensity)
	return
}

// Reset restores one display's baseline.
func (c *Client) Reset(name string) error {
	return c.call("Reset", name).Err
}

// ResetAll restores every display's baseline.
func (c *Client) ResetAll() error {
	return c.call("ResetAll").Err
}

// NextTransition returns the next solar transition, or ok == false when the
// daemon has no schedule configured.
func (c *Client) NextTransition() (at time.Time, kind string, ok bool, err error) {
	var unix int64
	if err = c.call("NextTransition").Store(&unix, &kind); err != nil {
		return
	}
	if unix == 0 {
		return
	}
	return time.Unix(unix, 0), kind, true, nil
}
