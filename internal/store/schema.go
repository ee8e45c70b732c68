package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	sessionEventsTable = "session_events"
	answerEventsTable  = "answer_events"
	rewardEventsTable  = "reward_events"
	snapshotsTable     = "snapshots"
)

var (
	// SessionEventsColumns holds the columns for the "session_events" table.
	SessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "game_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeEnum, Enums: []string{"start", "end"}},
		{Name: "questions", Type: field.TypeInt, Default: 0},
		{Name: "correct", Type: field.TypeInt, Default: 0},
		{Name: "duration_secs", Type: field.TypeInt, Default: 0},
		{Name: "passed", Type: field.TypeBool, Default: false},
	}
	// SessionEventsTable holds the schema information for the "session_events" table.
	SessionEventsTable = &schema.Table{
		Name:       sessionEventsTable,
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{SessionEventsColumns[3]}},
			{Name: "sessionevent_game_id_action", Columns: []*schema.Column{SessionEventsColumns[4], SessionEventsColumns[5]}},
		},
	}

	// AnswerEventsColumns holds the columns for the "answer_events" table.
	AnswerEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "game_id", Type: field.TypeString},
		{Name: "question_id", Type: field.TypeString},
		{Name: "selected", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeBool},
		{Name: "timed_out", Type: field.TypeBool, Default: false},
		{Name: "time_ms", Type: field.TypeInt, Default: 0},
	}
	// AnswerEventsTable holds the schema information for the "answer_events" table.
	AnswerEventsTable = &schema.Table{
		Name:       answerEventsTable,
		Columns:    AnswerEventsColumns,
		PrimaryKey: []*schema.Column{AnswerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{AnswerEventsColumns[3]}},
			{Name: "answerevent_game_id", Columns: []*schema.Column{AnswerEventsColumns[4]}},
		},
	}

	// RewardEventsColumns holds the columns for the "reward_events" table.
	RewardEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "game_id", Type: field.TypeString},
		{Name: "award_type", Type: field.TypeString},
		{Name: "rarity", Type: field.TypeString},
		{Name: "badge", Type: field.TypeString, Default: ""},
		{Name: "reason", Type: field.TypeString, Default: ""},
		{Name: "coins", Type: field.TypeInt, Default: 0},
		{Name: "xp", Type: field.TypeInt, Default: 0},
	}
	// RewardEventsTable holds the schema information for the "reward_events" table.
	RewardEventsTable = &schema.Table{
		Name:       rewardEventsTable,
		Columns:    RewardEventsColumns,
		PrimaryKey: []*schema.Column{RewardEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "rewardevent_session_id", Columns: []*schema.Column{RewardEventsColumns[3]}},
			{Name: "rewardevent_award_type", Columns: []*schema.Column{RewardEventsColumns[5]}},
		},
	}

	// SnapshotsColumns holds the columns for the "snapshots" table.
	SnapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "data", Type: field.TypeJSON},
	}
	// SnapshotsTable holds the schema information for the "snapshots" table.
	SnapshotsTable = &schema.Table{
		Name:       snapshotsTable,
		Columns:    SnapshotsColumns,
		PrimaryKey: []*schema.Column{SnapshotsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "snapshot_timestamp", Columns: []*schema.Column{SnapshotsColumns[2]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		SessionEventsTable,
		AnswerEventsTable,
		RewardEventsTable,
		SnapshotsTable,
	}
)
