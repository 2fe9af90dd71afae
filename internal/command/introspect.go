package command

// ShowSchema reports a dataset's field list.
type ShowSchema struct {
	Dataset string
}

// ShowAll reports every row of a dataset (structural read-only dump, as
// opposed to a query).
type ShowAll struct {
	Dataset string
}

// ShowShape reports a named tensor's shape.
type ShowShape struct {
	Tensor string
}

// ListDatasets lists dataset names in the current database.
type ListDatasets struct{}

// ListTensors lists named tensor handles in the current database.
type ListTensors struct{}

// ShowDatabases lists every database instance the engine knows about.
type ShowDatabases struct{}

func (*ShowSchema) commandNode()    {}
func (*ShowAll) commandNode()       {}
func (*ShowShape) commandNode()     {}
func (*ListDatasets) commandNode()  {}
func (*ListTensors) commandNode()   {}
func (*ShowDatabases) commandNode() {}
