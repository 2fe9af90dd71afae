package index

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"linal/internal/errs"
	"linal/internal/value"
)

type hashBucketEntry struct {
	key  value.Value
	rows []uint64
}

// HashIndex supports equality lookup over a single column, keyed by an
// xxhash digest of the value's canonical encoding. Digest collisions are
// resolved by bucketing multiple (value, row-list) entries per digest and
// confirming with value.Equal.
type HashIndex struct {
	name    string
	column  string
	colPos  int
	buckets map[uint64][]hashBucketEntry
}

// NewHashIndex constructs an empty hash index over column, which must sit
// at colPos in every IndexableRow.Values the index is handed.
func NewHashIndex(name, column string, colPos int) *HashIndex {
	return &HashIndex{name: name, column: column, colPos: colPos, buckets: make(map[uint64][]hashBucketEntry)}
}

func (h *HashIndex) Name() string            { return h.name }
func (h *HashIndex) TargetColumns() []string { return []string{h.column} }
func (h *HashIndex) Kind() string            { return "hash" }

// Build discards all existing entries and rescans rows from the start.
func (h *HashIndex) Build(rows []IndexableRow) error {
	h.buckets = make(map[uint64][]hashBucketEntry)
	for _, r := range rows {
		if err := h.OnInsert(r); err != nil {
			return err
		}
	}
	return nil
}

// OnInsert adds one row's target-column value into the index.
func (h *HashIndex) OnInsert(row IndexableRow) error {
	colIdx, err := h.columnIndex(row)
	if err != nil {
		return err
	}
	v := row.Values[colIdx]
	if v.IsNull() {
		return nil
	}
	digest, err := digestValue(v)
	if err != nil {
		return err
	}
	bucket := h.buckets[digest]
	for i, e := range bucket {
		if value.Equal(e.key, v) {
			bucket[i].rows = append(bucket[i].rows, row.ID)
			h.buckets[digest] = bucket
			return nil
		}
	}
	h.buckets[digest] = append(bucket, hashBucketEntry{key: v, rows: []uint64{row.ID}})
	return nil
}

// Lookup returns the row IDs whose target-column value equals query.
func (h *HashIndex) Lookup(query value.Value) ([]uint64, error) {
	digest, err := digestValue(query)
	if err != nil {
		return nil, err
	}
	for _, e := range h.buckets[digest] {
		if value.Equal(e.key, query) {
			out := make([]uint64, len(e.rows))
			copy(out, e.rows)
			return out, nil
		}
	}
	return nil, nil
}

func (h *HashIndex) columnIndex(row IndexableRow) (int, error) {
	if h.colPos < 0 || h.colPos >= len(row.Values) {
		return 0, &errs.Internal{Msg: "hash index: column position not configured"}
	}
	return h.colPos, nil
}

// numericTag is the shared digest tag for Int and Float, kept distinct
// from every value.Kind byte (KindNull is 0, and the Kind enum has far
// fewer than 255 members) so it never collides with Bool or String.
const numericTag = 0xff

// digestValue produces a canonical xxhash digest for any hashable
// (non-tensor) value. HashIndex only targets scalar columns, enforced by
// the dataset layer at index-creation time.
func digestValue(v value.Value) (uint64, error) {
	var buf [9]byte
	switch v.Kind() {
	case value.KindInt, value.KindFloat:
		// value.Equal treats Int and Float as the same numeric domain,
		// comparing by float value; hash them under one shared tag so
		// Lookup(Float(22.0)) finds an Int(22) entry and vice versa.
		f, err := value.AsFloat(v)
		if err != nil {
			return 0, err
		}
		buf[0] = numericTag
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(f))
		return xxhash.Sum64(buf[:]), nil
	case value.KindBool:
		buf[0] = byte(value.KindBool)
		if v.BoolVal() {
			buf[1] = 1
		}
		return xxhash.Sum64(buf[:2]), nil
	case value.KindString:
		data := append([]byte{byte(value.KindString)}, []byte(v.Str())...)
		return xxhash.Sum64(data), nil
	default:
		return 0, &errs.TypeError{Op: "hash_index", Types: []string{v.Kind().String()}}
	}
}
