package engine

import (
	"sync"
	"time"

	"linal/internal/dataset"
	"linal/internal/storage"
	"linal/internal/value"
)

// DatabaseInstance is one named database: its dataset namespace, its
// named tensor/scalar bindings (populated by DEFINE/VECTOR/MATRIX/LET),
// and the storage subdirectory it persists under.
//
// generation is bumped on every successful write command and exposed
// read-only via Generation, for SHOW DATABASES diagnostics; it plays no
// role in concurrency control, which stays the single-writer model of
// the rest of the engine.
type DatabaseInstance struct {
	Name      string
	CreatedAt time.Time

	Store *dataset.Store

	mu       sync.Mutex
	bindings map[string]value.Value

	generation uint64
}

// newInstance constructs an empty database instance.
func newInstance(name string) *DatabaseInstance {
	return &DatabaseInstance{
		Name:      name,
		CreatedAt: time.Now(),
		Store:     dataset.NewStore(),
		bindings:  make(map[string]value.Value),
	}
}

// Generation returns the instance's write-counter snapshot.
func (di *DatabaseInstance) Generation() uint64 {
	di.mu.Lock()
	defer di.mu.Unlock()
	return di.generation
}

// bumpGenerationLocked records a successful write command against the
// dataset store (index/schema mutations, row inserts) that the instance's
// own mutex doesn't otherwise guard.
func (di *DatabaseInstance) bumpGenerationLocked() {
	di.mu.Lock()
	defer di.mu.Unlock()
	di.generation++
}

// Binding resolves a named tensor or scalar bound by DEFINE/VECTOR/MATRIX
// or LET.
func (di *DatabaseInstance) Binding(name string) (value.Value, bool) {
	di.mu.Lock()
	defer di.mu.Unlock()
	v, ok := di.bindings[name]
	return v, ok
}

func (di *DatabaseInstance) setBinding(name string, v value.Value) {
	di.mu.Lock()
	defer di.mu.Unlock()
	di.bindings[name] = v
	di.generation++
}

// BindingNames lists every currently bound tensor/scalar name.
func (di *DatabaseInstance) BindingNames() []string {
	di.mu.Lock()
	defer di.mu.Unlock()
	out := make([]string, 0, len(di.bindings))
	for name := range di.bindings {
		out = append(out, name)
	}
	return out
}

// rehydrate rebuilds an instance's dataset store and bindings from a
// storage adapter's persisted records for database name.
func rehydrate(name string, adapter storage.Adapter) (*DatabaseInstance, error) {
	di := newInstance(name)

	datasetNames, err := adapter.ListDatasets(name)
	if err != nil {
		return nil, err
	}
	for _, dsName := range datasetNames {
		rec, err := adapter.LoadDataset(name, dsName)
		if err != nil {
			return nil, err
		}
		d := dataset.New(rec.Name, rec.Schema)
		for _, row := range rec.Rows {
			if _, err := d.InsertRow(row); err != nil {
				return nil, err
			}
		}
		for k, v := range rec.Metadata {
			d.SetMetadata(k, v)
		}
		if err := di.Store.Register(d); err != nil {
			return nil, err
		}
	}

	tensorNames, err := adapter.ListTensors(name)
	if err != nil {
		return nil, err
	}
	for _, tName := range tensorNames {
		rec, err := adapter.LoadTensor(name, tName)
		if err != nil {
			return nil, err
		}
		v, err := valueFromTensorRecord(rec)
		if err != nil {
			return nil, err
		}
		di.setBinding(tName, v)
	}

	return di, nil
}
