package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GameResult records one finished map game.
type GameResult struct {
	ent.Schema
}

func (GameResult) Mixin() []ent.Mixin {
	return []ent.Mixin{
		SequenceMixin{},
	}
}

func (GameResult) Fields() []ent.Field {
	return []ent.Field{
		field.String("game_id").
			Unique().
			Immutable(),
		field.String("mode").
			Comment("countries or continents"),
		field.String("continent_filter").
			Comment("Continent the pool was restricted to, or All"),
		field.Int("score"),
		field.Int("total"),
		field.Int("rounds"),
		field.Int64("finished_at").
			Comment("Unix milliseconds"),
	}
}

func (GameResult) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("mode", "continent_filter"),
	}
}
