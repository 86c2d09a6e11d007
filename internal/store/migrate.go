package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableAssessmentEvents = "assessment_events"
	tableLLMRequestEvents = "llm_request_events"
)

// eventColumns are shared by every event table: a global sequence and a
// UTC wall-clock timestamp.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
}

func eventIndexes(table string, cols []*schema.Column) []*schema.Index {
	return []*schema.Index{
		{Name: table + "_timestamp", Columns: []*schema.Column{cols[2]}},
	}
}

func newAssessmentEventsTable() *schema.Table {
	cols := append(eventColumns(),
		&schema.Column{Name: "assessment_id", Type: field.TypeString, Unique: true},
		&schema.Column{Name: "strategy", Type: field.TypeString},
		&schema.Column{Name: "content_set", Type: field.TypeString},
		&schema.Column{Name: "condition", Type: field.TypeString},
		&schema.Column{Name: "matched_rule", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "recommendation", Type: field.TypeString, Size: 2147483647},
		&schema.Column{Name: "note", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "features", Type: field.TypeJSON},
	)
	return &schema.Table{
		Name:       tableAssessmentEvents,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: append(eventIndexes(tableAssessmentEvents, cols),
			&schema.Index{Name: tableAssessmentEvents + "_condition", Columns: []*schema.Column{cols[6]}},
		),
	}
}

func newLLMRequestEventsTable() *schema.Table {
	cols := append(eventColumns(),
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	return &schema.Table{
		Name:       tableLLMRequestEvents,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: append(eventIndexes(tableLLMRequestEvents, cols),
			&schema.Index{Name: tableLLMRequestEvents + "_purpose", Columns: []*schema.Column{cols[5]}},
		),
	}
}

// migrate creates or upgrades the event tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, newAssessmentEventsTable(), newLLMRequestEventsTable()); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
