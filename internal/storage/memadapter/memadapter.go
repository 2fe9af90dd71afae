// Package memadapter implements a process-local, map-backed
// storage.Adapter: the zero-config default, with no on-disk footprint.
// Dropping the process loses everything it held, same as the teacher's
// in-memory storage engine.
package memadapter

import (
	"sync"

	"linal/internal/errs"
	"linal/internal/storage"
)

type db struct {
	datasets map[string]storage.DatasetRecord
	tensors  map[string]storage.TensorRecord
}

// Adapter is a storage.Adapter backed entirely by in-process maps.
type Adapter struct {
	mu  sync.RWMutex
	dbs map[string]*db
}

// New constructs an empty memadapter.
func New() *Adapter {
	return &Adapter{dbs: make(map[string]*db)}
}

func (a *Adapter) dbFor(name string, create bool) (*db, error) {
	d, ok := a.dbs[name]
	if !ok {
		if !create {
			return nil, &errs.NotFound{Kind: "database", Name: name}
		}
		d = &db{datasets: make(map[string]storage.DatasetRecord), tensors: make(map[string]storage.TensorRecord)}
		a.dbs[name] = d
	}
	return d, nil
}

func (a *Adapter) SaveDataset(dbName string, rec storage.DatasetRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, err := a.dbFor(dbName, true)
	if err != nil {
		return err
	}
	d.datasets[rec.Name] = rec
	return nil
}

func (a *Adapter) LoadDataset(dbName, name string) (storage.DatasetRecord, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	d, err := a.dbFor(dbName, false)
	if err != nil {
		return storage.DatasetRecord{}, err
	}
	rec, ok := d.datasets[name]
	if !ok {
		return storage.DatasetRecord{}, &errs.NotFound{Kind: "dataset", Name: name}
	}
	return rec, nil
}

func (a *Adapter) SaveTensor(dbName string, rec storage.TensorRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, err := a.dbFor(dbName, true)
	if err != nil {
		return err
	}
	d.tensors[rec.Name] = rec
	return nil
}

func (a *Adapter) LoadTensor(dbName, name string) (storage.TensorRecord, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	d, err := a.dbFor(dbName, false)
	if err != nil {
		return storage.TensorRecord{}, err
	}
	rec, ok := d.tensors[name]
	if !ok {
		return storage.TensorRecord{}, &errs.NotFound{Kind: "tensor", Name: name}
	}
	return rec, nil
}

func (a *Adapter) ListDatabases() ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]string, 0, len(a.dbs))
	for name := range a.dbs {
		out = append(out, name)
	}
	return out, nil
}

func (a *Adapter) ListDatasets(dbName string) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	d, err := a.dbFor(dbName, false)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(d.datasets))
	for name := range d.datasets {
		out = append(out, name)
	}
	return out, nil
}

func (a *Adapter) ListTensors(dbName string) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	d, err := a.dbFor(dbName, false)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(d.tensors))
	for name := range d.tensors {
		out = append(out, name)
	}
	return out, nil
}

func (a *Adapter) DeleteDataset(dbName, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, err := a.dbFor(dbName, false)
	if err != nil {
		return err
	}
	delete(d.datasets, name)
	return nil
}

func (a *Adapter) DeleteTensor(dbName, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, err := a.dbFor(dbName, false)
	if err != nil {
		return err
	}
	delete(d.tensors, name)
	return nil
}

func (a *Adapter) DeleteDatabase(dbName string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.dbs[dbName]; !ok {
		return &errs.NotFound{Kind: "database", Name: dbName}
	}
	delete(a.dbs, dbName)
	return nil
}
