package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// KVEntry is one key of the progress key-value store. Values are the
// JSON-encoded progress records.
type KVEntry struct {
	ent.Schema
}

func (KVEntry) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			Unique().
			Immutable().
			Comment("Storage key, e.g. mathProgress_year2"),
		field.Text("value").
			Comment("Encoded value"),
		field.Int64("updated_at").
			Comment("Unix milliseconds of the last write"),
	}
}
