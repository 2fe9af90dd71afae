package engine

import (
	"fmt"

	"linal/internal/command"
)

func (e *Engine) executeLifecycle(cmd command.Command) (DslOutput, error) {
	switch c := cmd.(type) {
	case *command.CreateDatabase:
		if err := e.CreateDatabase(c.Name); err != nil {
			return DslOutput{}, err
		}
		return ok(fmt.Sprintf("database %q created", c.Name)), nil
	case *command.DropDatabase:
		if err := e.DropDatabase(c.Name); err != nil {
			return DslOutput{}, err
		}
		return ok(fmt.Sprintf("database %q dropped", c.Name)), nil
	case *command.UseDatabase:
		if err := e.UseDatabase(c.Name); err != nil {
			return DslOutput{}, err
		}
		return ok(fmt.Sprintf("using database %q", c.Name)), nil
	}
	panic("engine: executeLifecycle called with non-lifecycle command")
}

// DatabaseSummary is one SHOW DATABASES row.
type DatabaseSummary struct {
	Name       string
	CreatedAt  string
	Generation uint64
}

func (e *Engine) executeShowDatabases() (DslOutput, error) {
	var rows []DatabaseSummary
	for _, di := range e.Databases() {
		rows = append(rows, DatabaseSummary{
			Name:       di.Name,
			CreatedAt:  di.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			Generation: di.Generation(),
		})
	}
	return DslOutput{Kind: OutputList, Payload: rows, Message: fmt.Sprintf("%d database(s)", len(rows))}, nil
}

func (e *Engine) executeSetDatasetMetadata(di *DatabaseInstance, c *command.SetDatasetMetadata) (DslOutput, error) {
	d, err := di.Store.GetByName(c.Dataset)
	if err != nil {
		return DslOutput{}, err
	}
	d.SetMetadata(c.Key, c.Value)
	di.bumpGenerationLocked()
	return ok(fmt.Sprintf("%s.%s metadata set", c.Dataset, c.Key)), nil
}
