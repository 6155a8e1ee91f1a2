package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GenerationRunEvent records the summary of one multiplication run. The
// generated questions themselves are not stored.
type GenerationRunEvent struct {
	ent.Schema
}

func (GenerationRunEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (GenerationRunEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("base_fact_id").
			Comment("Id of the base fact that was multiplied"),
		field.String("subject"),
		field.String("policy_version").
			Default("").
			Comment("Version of the tuning policy used for the run"),
		field.Int("factor").
			Comment("Multiplication factor computed for the fact"),
		field.Int64("seed").
			Comment("Random seed; replaying with it reproduces the batch"),
		field.Int("main_count").
			Default(0),
		field.Int("high_impact_count").
			Default(0),
		field.Int("contextual_count").
			Default(0),
		field.JSON("type_counts", map[string]int{}).
			Optional().
			Comment("Questions kept per type tag after deduplication"),
		field.Strings("failures").
			Optional().
			Comment("One message per failed generator call"),
		field.Int("duplicates_removed").
			Default(0),
		field.Int("total").
			Comment("Questions returned after deduplication"),
		field.Int64("duration_ms").
			Default(0),
	}
}

func (GenerationRunEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("base_fact_id"),
		index.Fields("subject"),
	}
}
