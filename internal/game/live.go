package game

import (
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Live holds the catalog currently in effect and swaps it on reload.
type Live struct {
	loader  *Loader
	current atomic.Pointer[Catalog]
}

// NewLive loads the catalog once; the error is fatal for callers at startup.
func NewLive(loader *Loader) (*Live, error) {
	c, err := loader.Load()
	if err != nil {
		return nil, err
	}
	l := &Live{loader: loader}
	l.current.Store(c)
	return l, nil
}

// Static wraps a fixed catalog, e.g. for tests.
func Static(c *Catalog) *Live {
	l := &Live{}
	l.current.Store(c)
	return l
}

// Catalog returns the catalog in effect.
func (l *Live) Catalog() *Catalog { return l.current.Load() }

// Reload re-reads the override file. An invalid file leaves the old catalog in place.
func (l *Live) Reload() error {
	if l.loader == nil {
		return nil
	}
	l.loader.Invalidate()
	c, err := l.loader.Load()
	if err != nil {
		log.WithError(err).Error("catalog reload rejected, keeping previous version")
		return err
	}
	l.current.Store(c)
	log.WithField("version", c.Version).Info("catalog reloaded")
	return nil
}
