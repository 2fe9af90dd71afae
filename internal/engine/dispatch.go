package engine

import (
	"fmt"

	"linal/internal/command"
	"linal/internal/errs"
)

// Execute routes cmd to the handler for its command category, against
// the engine's current database instance. Lifecycle commands are the
// only ones that don't require a current database to already be
// selected.
func (e *Engine) Execute(cmd command.Command) (DslOutput, error) {
	switch cmd.(type) {
	case *command.CreateDatabase, *command.DropDatabase, *command.UseDatabase:
		return e.executeLifecycle(cmd)
	case *command.ShowDatabases:
		return e.executeShowDatabases()
	}

	di, err := e.Current()
	if err != nil {
		return DslOutput{}, err
	}

	switch c := cmd.(type) {
	case *command.DefineTensor:
		return e.executeDefineTensor(di, c)
	case *command.LetExpr:
		return e.executeLetExpr(di, c)

	case *command.CreateDataset:
		return e.executeCreateDataset(di, c)
	case *command.InsertRow:
		return e.executeInsertRow(di, c)

	case *command.AddColumn:
		return e.executeAddColumn(di, c)
	case *command.MaterializeColumn:
		return e.executeMaterializeColumn(di, c)
	case *command.RenameColumn:
		return e.executeRenameColumn(di, c)
	case *command.DropColumn:
		return e.executeDropColumn(di, c)

	case *command.Select:
		return e.executeSelect(di, c)

	case *command.CreateHashIndex:
		return e.executeCreateHashIndex(di, c)
	case *command.CreateVectorIndex:
		return e.executeCreateVectorIndex(di, c)
	case *command.DropIndex:
		return e.executeDropIndex(di, c)
	case *command.ShowIndexes:
		return e.executeShowIndexes(di, c)

	case *command.Search:
		return e.executeSearch(di, c)

	case *command.Explain:
		return e.executeExplain(di, c)

	case *command.ShowSchema:
		return e.executeShowSchema(di, c)
	case *command.ShowAll:
		return e.executeShowAll(di, c)
	case *command.ShowShape:
		return e.executeShowShape(di, c)
	case *command.ListDatasets:
		return e.executeListDatasets(di)
	case *command.ListTensors:
		return e.executeListTensors(di)

	case *command.SaveDataset:
		return e.executeSaveDataset(di, c)
	case *command.LoadDataset:
		return e.executeLoadDataset(di, c)
	case *command.SaveTensor:
		return e.executeSaveTensor(di, c)
	case *command.LoadTensor:
		return e.executeLoadTensor(di, c)

	case *command.SetDatasetMetadata:
		return e.executeSetDatasetMetadata(di, c)

	default:
		return DslOutput{}, &errs.Unsupported{Op: fmt.Sprintf("command %T", c)}
	}
}
