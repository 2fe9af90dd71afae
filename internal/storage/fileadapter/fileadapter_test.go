package fileadapter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"linal/internal/schema"
	"linal/internal/storage"
	"linal/internal/storage/fileadapter"
	"linal/internal/tensor"
	"linal/internal/value"
)

func newAdapter(t *testing.T) *fileadapter.Adapter {
	t.Helper()
	a, err := fileadapter.New(t.TempDir())
	require.NoError(t, err)
	return a
}

func TestSaveAndLoadDatasetRoundTrips(t *testing.T) {
	a := newAdapter(t)
	sch := schema.Schema{Fields: []schema.Field{
		{Name: "name", Type: value.TypeString()},
		{Name: "score", Type: value.TypeFloat()},
	}}
	rec := storage.DatasetRecord{
		Name:   "players",
		Schema: sch,
		Rows: [][]value.Value{
			{value.String("ada"), value.Float(9.5)},
			{value.String("grace"), value.Float(8.25)},
		},
		Metadata: map[string]string{"version": "1"},
	}

	require.NoError(t, a.SaveDataset("main", rec))

	loaded, err := a.LoadDataset("main", "players")
	require.NoError(t, err)
	require.Equal(t, "players", loaded.Name)
	require.Len(t, loaded.Rows, 2)
	require.True(t, value.Equal(value.String("ada"), loaded.Rows[0][0]))
	require.True(t, value.Equal(value.Float(9.5), loaded.Rows[0][1]))
	require.Equal(t, "1", loaded.Metadata["version"])
}

func TestLoadDatasetMissingReturnsNotFound(t *testing.T) {
	a := newAdapter(t)
	_, err := a.LoadDataset("main", "ghost")
	require.Error(t, err)
}

func TestSaveAndLoadTensorRoundTrips(t *testing.T) {
	a := newAdapter(t)
	tn, err := tensor.New(tensor.NextID(), tensor.Shape{2, 2}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	rec := storage.TensorRecord{Name: "weights", Shape: []int(tn.Shape()), Data: tn.Data()}

	require.NoError(t, a.SaveTensor("main", rec))
	loaded, err := a.LoadTensor("main", "weights")
	require.NoError(t, err)
	require.Equal(t, []int{2, 2}, loaded.Shape)
	require.Equal(t, []float64{1, 2, 3, 4}, loaded.Data)
}

func TestListDatasetsAndTensorsReflectMeta(t *testing.T) {
	a := newAdapter(t)
	require.NoError(t, a.SaveDataset("main", storage.DatasetRecord{Name: "a"}))
	require.NoError(t, a.SaveDataset("main", storage.DatasetRecord{Name: "b"}))
	require.NoError(t, a.SaveTensor("main", storage.TensorRecord{Name: "t1"}))

	datasets, err := a.ListDatasets("main")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b"}, datasets)

	tensors, err := a.ListTensors("main")
	require.NoError(t, err)
	require.Equal(t, []string{"t1"}, tensors)

	dbs, err := a.ListDatabases()
	require.NoError(t, err)
	require.Equal(t, []string{"main"}, dbs)
}

func TestDeleteDatasetRemovesFileAndMetaEntry(t *testing.T) {
	a := newAdapter(t)
	require.NoError(t, a.SaveDataset("main", storage.DatasetRecord{Name: "a"}))
	require.NoError(t, a.DeleteDataset("main", "a"))

	_, err := a.LoadDataset("main", "a")
	require.Error(t, err)

	datasets, err := a.ListDatasets("main")
	require.NoError(t, err)
	require.Empty(t, datasets)
}

func TestDeleteDatabaseRemovesEverything(t *testing.T) {
	a := newAdapter(t)
	require.NoError(t, a.SaveDataset("main", storage.DatasetRecord{Name: "a"}))
	require.NoError(t, a.DeleteDatabase("main"))

	dbs, err := a.ListDatabases()
	require.NoError(t, err)
	require.Empty(t, dbs)
}

func TestResavingDatasetKeepsSingleMetaEntry(t *testing.T) {
	a := newAdapter(t)
	require.NoError(t, a.SaveDataset("main", storage.DatasetRecord{Name: "a"}))
	require.NoError(t, a.SaveDataset("main", storage.DatasetRecord{Name: "a"}))

	datasets, err := a.ListDatasets("main")
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, datasets)
}
