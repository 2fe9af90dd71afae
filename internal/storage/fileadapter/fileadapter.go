// Package fileadapter implements a storage.Adapter that persists each
// dataset and tensor as its own encoding/gob file under the configured
// data root, with a meta.json sidecar per database recording what it
// holds (so ListDatasets/ListTensors never needs a directory walk).
// Grounded on the teacher's filestore package's directory-per-database
// layout, simplified: no WAL, no page format — one file per entity is
// enough durability for LINAL's single-writer model.
package fileadapter

import (
	"encoding/gob"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"linal/internal/errs"
	"linal/internal/storage"
)

// Adapter persists to the filesystem under root.
type Adapter struct {
	root string
}

// New constructs a fileadapter rooted at root, creating it if absent.
func New(root string) (*Adapter, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "fileadapter: create data root")
	}
	return &Adapter{root: root}, nil
}

type meta struct {
	Datasets []string `json:"datasets"`
	Tensors  []string `json:"tensors"`
}

func (a *Adapter) dbDir(db string) string          { return filepath.Join(a.root, db) }
func (a *Adapter) datasetsDir(db string) string    { return filepath.Join(a.dbDir(db), "datasets") }
func (a *Adapter) tensorsDir(db string) string     { return filepath.Join(a.dbDir(db), "tensors") }
func (a *Adapter) metaPath(db string) string       { return filepath.Join(a.dbDir(db), "meta.json") }
func (a *Adapter) datasetPath(db, name string) string {
	return filepath.Join(a.datasetsDir(db), name+".gob")
}
func (a *Adapter) tensorPath(db, name string) string {
	return filepath.Join(a.tensorsDir(db), name+".gob")
}

func (a *Adapter) loadMeta(db string) (meta, error) {
	data, err := os.ReadFile(a.metaPath(db))
	if os.IsNotExist(err) {
		return meta{}, nil
	}
	if err != nil {
		return meta{}, errors.Wrap(err, "fileadapter: read meta")
	}
	var m meta
	if err := json.Unmarshal(data, &m); err != nil {
		return meta{}, errors.Wrap(err, "fileadapter: parse meta")
	}
	return m, nil
}

func (a *Adapter) saveMeta(db string, m meta) error {
	if err := os.MkdirAll(a.dbDir(db), 0o755); err != nil {
		return errors.Wrap(err, "fileadapter: create database dir")
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "fileadapter: marshal meta")
	}
	return os.WriteFile(a.metaPath(db), data, 0o644)
}

func appendUnique(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}

func (a *Adapter) SaveDataset(db string, rec storage.DatasetRecord) error {
	dir := a.datasetsDir(db)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "fileadapter: create datasets dir")
	}
	f, err := os.Create(a.datasetPath(db, rec.Name))
	if err != nil {
		return errors.Wrap(err, "fileadapter: create dataset file")
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(rec); err != nil {
		return errors.Wrap(err, "fileadapter: encode dataset")
	}

	m, err := a.loadMeta(db)
	if err != nil {
		return err
	}
	m.Datasets = appendUnique(m.Datasets, rec.Name)
	return a.saveMeta(db, m)
}

func (a *Adapter) LoadDataset(db, name string) (storage.DatasetRecord, error) {
	f, err := os.Open(a.datasetPath(db, name))
	if os.IsNotExist(err) {
		return storage.DatasetRecord{}, &errs.NotFound{Kind: "dataset", Name: name}
	}
	if err != nil {
		return storage.DatasetRecord{}, errors.Wrap(err, "fileadapter: open dataset file")
	}
	defer f.Close()
	var rec storage.DatasetRecord
	if err := gob.NewDecoder(f).Decode(&rec); err != nil {
		return storage.DatasetRecord{}, errors.Wrap(err, "fileadapter: decode dataset")
	}
	return rec, nil
}

func (a *Adapter) SaveTensor(db string, rec storage.TensorRecord) error {
	dir := a.tensorsDir(db)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "fileadapter: create tensors dir")
	}
	f, err := os.Create(a.tensorPath(db, rec.Name))
	if err != nil {
		return errors.Wrap(err, "fileadapter: create tensor file")
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(rec); err != nil {
		return errors.Wrap(err, "fileadapter: encode tensor")
	}

	m, err := a.loadMeta(db)
	if err != nil {
		return err
	}
	m.Tensors = appendUnique(m.Tensors, rec.Name)
	return a.saveMeta(db, m)
}

func (a *Adapter) LoadTensor(db, name string) (storage.TensorRecord, error) {
	f, err := os.Open(a.tensorPath(db, name))
	if os.IsNotExist(err) {
		return storage.TensorRecord{}, &errs.NotFound{Kind: "tensor", Name: name}
	}
	if err != nil {
		return storage.TensorRecord{}, errors.Wrap(err, "fileadapter: open tensor file")
	}
	defer f.Close()
	var rec storage.TensorRecord
	if err := gob.NewDecoder(f).Decode(&rec); err != nil {
		return storage.TensorRecord{}, errors.Wrap(err, "fileadapter: decode tensor")
	}
	return rec, nil
}

func (a *Adapter) ListDatabases() ([]string, error) {
	entries, err := os.ReadDir(a.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "fileadapter: list databases")
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func (a *Adapter) ListDatasets(db string) ([]string, error) {
	m, err := a.loadMeta(db)
	if err != nil {
		return nil, err
	}
	return m.Datasets, nil
}

func (a *Adapter) ListTensors(db string) ([]string, error) {
	m, err := a.loadMeta(db)
	if err != nil {
		return nil, err
	}
	return m.Tensors, nil
}

func (a *Adapter) DeleteDataset(db, name string) error {
	if err := os.Remove(a.datasetPath(db, name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "fileadapter: delete dataset")
	}
	m, err := a.loadMeta(db)
	if err != nil {
		return err
	}
	m.Datasets = removeName(m.Datasets, name)
	return a.saveMeta(db, m)
}

func (a *Adapter) DeleteTensor(db, name string) error {
	if err := os.Remove(a.tensorPath(db, name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "fileadapter: delete tensor")
	}
	m, err := a.loadMeta(db)
	if err != nil {
		return err
	}
	m.Tensors = removeName(m.Tensors, name)
	return a.saveMeta(db, m)
}

func (a *Adapter) DeleteDatabase(db string) error {
	if err := os.RemoveAll(a.dbDir(db)); err != nil {
		return errors.Wrap(err, "fileadapter: delete database")
	}
	return nil
}

func removeName(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
