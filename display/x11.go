package display

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/tintd/tintd/gamma"
)

// X11 is a Backend that manipulates gamma tables through the RandR
// extension. It is safe for concurrent usage.
type X11 struct {
	conn   *xgb.Conn
	logger *slog.Logger
	root   xproto.Window
}

// NewX11 opens an X11 connection to the specified display (empty for the
// default), processing events in another goroutine. The returned channel
// receives a notification whenever a CRTC changes (display connected,
// disconnected, or mode switched) and is closed if the connection fails. If
// logger is not nil, it is used for debug logs from this package.
func NewX11(displayName string, logger *slog.Logger) (*X11, <-chan struct{}, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	conn, err := xgb.NewConnDisplay(displayName)
	if err != nil {
		return nil, nil, err
	}

	x := &X11{conn: conn, logger: logger}
	x.root = xproto.Setup(conn).DefaultScreen(conn).Root

	if err := randr.Init(conn); err != nil {
		conn.Close()
		return nil, nil, err
	}

	if err := randr.SelectInputChecked(conn, x.root, randr.NotifyMaskCrtcChange|randr.NotifyMaskOutputChange).Check(); err != nil {
		conn.Close()
		return nil, nil, err
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		for {
			e, err := conn.WaitForEvent()
			if err != nil {
				x.logger.Error("x11: randr: event loop failed", "error", err)
				return
			}
			if e, ok := e.(randr.NotifyEvent); ok {
				if e.SubCode == randr.NotifyCrtcChange || e.SubCode == randr.NotifyOutputChange {
					select {
					case changes <- struct{}{}:
					default:
					}
				}
			}
		}
	}()

	return x, changes, nil
}

func (x *X11) Close() {
	x.conn.Close()
}

func (x *X11) Displays() ([]ID, error) {
	crtcs, err := x.outputs()
	if err != nil {
		return nil, err
	}
	ids := make([]ID, 0, len(crtcs))
	for id := range crtcs {
		ids = append(ids, id)
	}
	return ids, nil
}

func (x *X11) ReadGamma(id ID) (*gamma.Table, error) {
	crtc, err := x.crtc(id)
	if err != nil {
		return nil, err
	}
	reply, err := randr.GetCrtcGamma(x.conn, crtc).Reply()
	if err != nil {
		return nil, fmt.Errorf("get crtc gamma: %w", err)
	}
	if reply.Size == 0 {
		return nil, fmt.Errorf("display %q has no gamma table", id)
	}
	t := gamma.NewTable(int(reply.Size))
	for i := range t.R {
		t.R[i] = float32(reply.Red[i]) / 0xffff
		t.G[i] = float32(reply.Green[i]) / 0xffff
		t.B[i] = float32(reply.Blue[i]) / 0xffff
	}
	return t, nil
}

func (x *X11) WriteGamma(id ID, t *gamma.Table) error {
	crtc, err := x.crtc(id)
	if err != nil {
		return err
	}
	size, err := randr.GetCrtcGammaSize(x.conn, crtc).Reply()
	if err != nil {
		return fmt.Errorf("get crtc gamma size: %w", err)
	}
	if int(size.Size) != t.Size() {
		return fmt.Errorf("gamma table size mismatch for %q: have %d, hardware wants %d", id, t.Size(), size.Size)
	}
	r := make([]uint16, t.Size())
	g := make([]uint16, t.Size())
	b := make([]uint16, t.Size())
	for i := range t.R {
		r[i] = uint16(t.R[i]*0xffff + 0.5)
		g[i] = uint16(t.G[i]*0xffff + 0.5)
		b[i] = uint16(t.B[i]*0xffff + 0.5)
	}
	if err := randr.SetCrtcGammaChecked(x.conn, crtc, size.Size, r, g, b).Check(); err != nil {
		return fmt.Errorf("set crtc gamma: %w", err)
	}
	return nil
}

// outputs maps each connected output with an active CRTC to its CRTC.
// Outputs whose info cannot be resolved are skipped.
func (x *X11) outputs() (map[ID]randr.Crtc, error) {
	resources, err := randr.GetScreenResourcesCurrent(x.conn, x.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("get screen resources: %w", err)
	}
	crtcs := make(map[ID]randr.Crtc)
	for _, output := range resources.Outputs {
		info, err := randr.GetOutputInfo(x.conn, output, resources.ConfigTimestamp).Reply()
		if err != nil {
			x.logger.Debug("x11: randr: failed to get output info", "output", output, "error", err)
			continue
		}
		if info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtcs[ID(info.Name)] = info.Crtc
	}
	return crtcs, nil
}

func (x *X11) crtc(id ID) (randr.Crtc, error) {
	crtcs, err := x.outputs()
	if err != nil {
		return 0, err
	}
	crtc, ok := crtcs[id]
	if !ok {
		return 0, fmt.Errorf("unknown display %q", id)
	}
	return crtc, nil
}
