package persist

import (
	"context"
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// DefaultAppName is the gdata application directory.
const DefaultAppName = "labyrinth"

// gdataObject groups the labyrinth records inside the gdata store.
const gdataObject = "saves"

func init() {
	Register("gdata", func(opts Options) (Medium, error) {
		return OpenGdata(opts.AppName, opts.key())
	})
}

// Gdata stores the record through the platform data directory managed by
// quasilyte/gdata.
type Gdata struct {
	manager *gdata.Manager
	prop    string
}

// OpenGdata opens the gdata store for appName and uses prop as the record
// name.
func OpenGdata(appName, prop string) (*Gdata, error) {
	if appName == "" {
		appName = DefaultAppName
	}
	if prop == "" {
		prop = DefaultKey
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("persist: open gdata %q: %w", appName, err)
	}
	return NewGdata(m, prop), nil
}

// NewGdata wraps an already opened manager.
func NewGdata(m *gdata.Manager, prop string) *Gdata {
	return &Gdata{manager: m, prop: prop}
}

// Name implements Medium.
func (g *Gdata) Name() string { return "gdata" }

// Read implements Medium.
func (g *Gdata) Read(_ context.Context) ([]byte, error) {
	if !g.manager.ObjectPropExists(gdataObject, g.prop) {
		return nil, ErrNotFound
	}
	data, err := g.manager.LoadObjectProp(gdataObject, g.prop)
	if err != nil {
		return nil, fmt.Errorf("persist: load gdata %s: %w", g.prop, err)
	}
	return data, nil
}

// Write implements Medium.
func (g *Gdata) Write(_ context.Context, data []byte) error {
	if err := g.manager.SaveObjectProp(gdataObject, g.prop, data); err != nil {
		return fmt.Errorf("persist: save gdata %s: %w", g.prop, err)
	}
	return nil
}

// Delete implements Medium. Deleting a missing record is not an error.
func (g *Gdata) Delete(_ context.Context) error {
	if err := g.manager.DeleteObjectProp(gdataObject, g.prop); err != nil {
		return fmt.Errorf("persist: delete gdata %s: %w", g.prop, err)
	}
	return nil
}

// Close implements Medium.
func (g *Gdata) Close() error { return nil }
