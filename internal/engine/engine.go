// Package engine is LINAL's instance manager: the map of named database
// instances, lifecycle commands over that map, bootstrap recovery from a
// storage adapter, and the Execute dispatcher that routes every other
// command category to the dataset/eval/plan/exec packages underneath.
package engine

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"linal/internal/config"
	"linal/internal/errs"
	"linal/internal/storage"
)

// Engine owns every database instance and tracks which one is current.
type Engine struct {
	mu        sync.RWMutex
	instances map[string]*DatabaseInstance
	current   string

	adapter storage.Adapter
	cfg     config.Config
	log     *logrus.Logger
}

// New constructs an engine bound to adapter with no instances loaded;
// call Bootstrap to rehydrate from existing persisted state. Logging
// goes to logrus.StandardLogger() unless the caller overrides it with
// SetLogger.
func New(cfg config.Config, adapter storage.Adapter) *Engine {
	return &Engine{instances: make(map[string]*DatabaseInstance), adapter: adapter, cfg: cfg, log: logrus.StandardLogger()}
}

// SetLogger overrides the engine's logger.
func (e *Engine) SetLogger(log *logrus.Logger) {
	e.log = log
}

// Bootstrap asks the storage adapter to enumerate every database under
// the configured data root and rehydrates each instance concurrently,
// bounded to runtime.NumCPU() in flight. A failure loading any one
// database aborts the whole bootstrap with that database's wrapped
// error: a partially bootstrapped engine would let USE silently succeed
// against missing state.
func (e *Engine) Bootstrap(ctx context.Context) error {
	names, err := e.adapter.ListDatabases()
	if err != nil {
		return errors.Wrap(err, "engine: bootstrap: list databases")
	}
	e.log.WithField("databases", len(names)).Info("engine: bootstrap starting")

	loaded := make([]*DatabaseInstance, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			di, err := rehydrate(name, e.adapter)
			if err != nil {
				return errors.Wrapf(err, "engine: bootstrap: database %q", name)
			}
			loaded[i] = di
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, di := range loaded {
		e.instances[di.Name] = di
	}
	if e.current == "" && e.cfg.DefaultDatabase != "" {
		if _, ok := e.instances[e.cfg.DefaultDatabase]; ok {
			e.current = e.cfg.DefaultDatabase
		}
	}
	e.log.WithField("loaded", len(loaded)).Info("engine: bootstrap complete")
	return nil
}

// CreateDatabase creates an empty database instance named name.
func (e *Engine) CreateDatabase(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.instances[name]; exists {
		return &errs.AlreadyExists{Kind: "database", Name: name}
	}
	e.instances[name] = newInstance(name)
	if e.current == "" {
		e.current = name
	}
	e.log.WithField("database", name).Info("engine: database created")
	return nil
}

// DropDatabase removes a database instance from the engine's map. The
// on-disk directory policy is the adapter's concern; core never deletes
// files on drop unless the adapter chooses to.
func (e *Engine) DropDatabase(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.instances[name]; !exists {
		return &errs.NotFound{Kind: "database", Name: name}
	}
	delete(e.instances, name)
	if e.current == name {
		e.current = ""
	}
	e.log.WithField("database", name).Info("engine: database dropped")
	return nil
}

// UseDatabase switches the engine's current instance.
func (e *Engine) UseDatabase(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.instances[name]; !exists {
		return &errs.NotFound{Kind: "database", Name: name}
	}
	e.current = name
	return nil
}

// Current returns the current database instance.
func (e *Engine) Current() (*DatabaseInstance, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.current == "" {
		return nil, &errs.NotFound{Kind: "database", Name: "<none selected>"}
	}
	return e.instances[e.current], nil
}

// Databases lists every database instance the engine knows about.
func (e *Engine) Databases() []*DatabaseInstance {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*DatabaseInstance, 0, len(e.instances))
	for _, di := range e.instances {
		out = append(out, di)
	}
	return out
}
