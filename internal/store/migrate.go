package store

import (
	"context"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// kvEntriesColumns holds the columns for the "kv_entries" table.
	kvEntriesColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	// kvEntriesTable holds the schema information for the "kv_entries" table.
	kvEntriesTable = &schema.Table{
		Name:       "kv_entries",
		Columns:    kvEntriesColumns,
		PrimaryKey: []*schema.Column{kvEntriesColumns[0]},
	}

	// gameResultsColumns holds the columns for the "game_results" table.
	gameResultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "game_id", Type: field.TypeString, Unique: true},
		{Name: "mode", Type: field.TypeString},
		{Name: "continent_filter", Type: field.TypeString},
		{Name: "score", Type: field.TypeInt},
		{Name: "total", Type: field.TypeInt},
		{Name: "rounds", Type: field.TypeInt},
		{Name: "finished_at", Type: field.TypeInt64},
	}
	// gameResultsTable holds the schema information for the "game_results" table.
	gameResultsTable = &schema.Table{
		Name:       "game_results",
		Columns:    gameResultsColumns,
		PrimaryKey: []*schema.Column{gameResultsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "gameresult_mode_continent_filter",
				Unique:  false,
				Columns: []*schema.Column{gameResultsColumns[3], gameResultsColumns[4]},
			},
		},
	}

	// tables holds every table managed by the store.
	tables = []*schema.Table{
		kvEntriesTable,
		gameResultsTable,
	}
)

// migrate creates or updates the managed tables.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
