package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions used for auto-migration. Column order matters: the
// repositories address columns by name but the indexes and foreign keys
// below address them by position.
var (
	testsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "title", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "created_by", Type: field.TypeInt64, Default: 0},
		{Name: "supports_multiple_answers", Type: field.TypeBool, Default: false},
		{Name: "created_at", Type: field.TypeTime},
	}
	testsTable = &schema.Table{
		Name:       "tests",
		Columns:    testsColumns,
		PrimaryKey: []*schema.Column{testsColumns[0]},
	}

	questionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "test_id", Type: field.TypeInt64},
		{Name: "position", Type: field.TypeInt},
		{Name: "question_text", Type: field.TypeString, Size: 2147483647},
		{Name: "option_a", Type: field.TypeString, Default: ""},
		{Name: "option_b", Type: field.TypeString, Default: ""},
		{Name: "option_c", Type: field.TypeString, Default: ""},
		{Name: "option_d", Type: field.TypeString, Default: ""},
		{Name: "question_type", Type: field.TypeString, Default: "single"},
		{Name: "correct_options", Type: field.TypeString},
		{Name: "points", Type: field.TypeFloat64, Default: 1.0},
	}
	questionsTable = &schema.Table{
		Name:       "test_questions",
		Columns:    questionsColumns,
		PrimaryKey: []*schema.Column{questionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "test_questions_tests_questions",
				Columns:    []*schema.Column{questionsColumns[1]},
				RefColumns: []*schema.Column{testsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "testquestion_test_id_position", Columns: []*schema.Column{questionsColumns[1], questionsColumns[2]}},
		},
	}

	resultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "attempt_id", Type: field.TypeString, Unique: true},
		{Name: "user_id", Type: field.TypeInt64},
		{Name: "test_id", Type: field.TypeInt64},
		{Name: "score", Type: field.TypeFloat64},
		{Name: "total_questions", Type: field.TypeInt},
		{Name: "correct_answers", Type: field.TypeInt},
		{Name: "points_earned", Type: field.TypeFloat64},
		{Name: "points_possible", Type: field.TypeFloat64},
		{Name: "completed_at", Type: field.TypeTime},
	}
	resultsTable = &schema.Table{
		Name:       "user_test_results",
		Columns:    resultsColumns,
		PrimaryKey: []*schema.Column{resultsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "user_test_results_tests_results",
				Columns:    []*schema.Column{resultsColumns[4]},
				RefColumns: []*schema.Column{testsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "usertestresult_user_id_test_id", Columns: []*schema.Column{resultsColumns[3], resultsColumns[4]}},
		},
	}

	answersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "result_id", Type: field.TypeInt64},
		{Name: "question_id", Type: field.TypeInt64},
		{Name: "user_answer", Type: field.TypeString},
		{Name: "is_correct", Type: field.TypeBool},
		{Name: "partial_credit", Type: field.TypeFloat64},
		{Name: "points", Type: field.TypeFloat64, Default: 1.0},
	}
	answersTable = &schema.Table{
		Name:       "user_question_answers",
		Columns:    answersColumns,
		PrimaryKey: []*schema.Column{answersColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "user_question_answers_user_test_results_answers",
				Columns:    []*schema.Column{answersColumns[1]},
				RefColumns: []*schema.Column{resultsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "userquestionanswer_result_id", Columns: []*schema.Column{answersColumns[1]}},
		},
	}

	universitiesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "name", Type: field.TypeString},
		{Name: "location", Type: field.TypeString, Default: ""},
		{Name: "type", Type: field.TypeString, Default: ""},
		{Name: "description", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	universitiesTable = &schema.Table{
		Name:       "universities",
		Columns:    universitiesColumns,
		PrimaryKey: []*schema.Column{universitiesColumns[0]},
	}

	scoresColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "university_id", Type: field.TypeInt64},
		{Name: "year", Type: field.TypeInt},
		{Name: "min_score", Type: field.TypeFloat64},
		{Name: "avg_score", Type: field.TypeFloat64},
		{Name: "max_score", Type: field.TypeFloat64},
	}
	scoresTable = &schema.Table{
		Name:       "university_scores",
		Columns:    scoresColumns,
		PrimaryKey: []*schema.Column{scoresColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "university_scores_universities_scores",
				Columns:    []*schema.Column{scoresColumns[1]},
				RefColumns: []*schema.Column{universitiesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "universityscore_university_id_year", Unique: true, Columns: []*schema.Column{scoresColumns[1], scoresColumns[2]}},
		},
	}

	preferencesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "user_id", Type: field.TypeInt64},
		{Name: "preferred_major", Type: field.TypeString, Default: ""},
		{Name: "current_score", Type: field.TypeFloat64},
		{Name: "expected_score", Type: field.TypeFloat64},
		{Name: "created_at", Type: field.TypeTime},
	}
	preferencesTable = &schema.Table{
		Name:       "user_preferences",
		Columns:    preferencesColumns,
		PrimaryKey: []*schema.Column{preferencesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "userpreference_user_id", Columns: []*schema.Column{preferencesColumns[1]}},
		},
	}

	recommendationRunsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "run_id", Type: field.TypeString, Unique: true},
		{Name: "user_id", Type: field.TypeInt64},
		{Name: "size", Type: field.TypeInt, Default: 0},
		{Name: "created_at", Type: field.TypeTime},
	}
	recommendationRunsTable = &schema.Table{
		Name:       "recommendation_runs",
		Columns:    recommendationRunsColumns,
		PrimaryKey: []*schema.Column{recommendationRunsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "recommendationrun_user_id", Columns: []*schema.Column{recommendationRunsColumns[2]}},
		},
	}

	recommendationsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "run_id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeInt64},
		{Name: "university_id", Type: field.TypeInt64},
		{Name: "rank", Type: field.TypeInt},
		{Name: "year", Type: field.TypeInt},
		{Name: "min_score", Type: field.TypeFloat64},
		{Name: "avg_score", Type: field.TypeFloat64},
		{Name: "max_score", Type: field.TypeFloat64},
		{Name: "gap", Type: field.TypeFloat64},
		{Name: "major_match", Type: field.TypeBool, Default: false},
		{Name: "created_at", Type: field.TypeTime},
	}
	recommendationsTable = &schema.Table{
		Name:       "university_recommendations",
		Columns:    recommendationsColumns,
		PrimaryKey: []*schema.Column{recommendationsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "university_recommendations_universities_recommendations",
				Columns:    []*schema.Column{recommendationsColumns[3]},
				RefColumns: []*schema.Column{universitiesColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "university_recommendations_recommendation_runs_recommendations",
				Columns:    []*schema.Column{recommendationsColumns[1]},
				RefColumns: []*schema.Column{recommendationRunsColumns[1]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "universityrecommendation_user_id", Columns: []*schema.Column{recommendationsColumns[2]}},
			{Name: "universityrecommendation_run_id", Columns: []*schema.Column{recommendationsColumns[1]}},
		},
	}

	llmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmEventsColumns[2]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[5]}},
			{Name: "llmrequestevent_model", Columns: []*schema.Column{llmEventsColumns[4]}},
		},
	}

	sequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	sequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
	}

	// tables lists every table in dependency order.
	tables = []*schema.Table{
		testsTable,
		questionsTable,
		resultsTable,
		answersTable,
		universitiesTable,
		scoresTable,
		preferencesTable,
		recommendationRunsTable,
		recommendationsTable,
		llmEventsTable,
		sequenceTable,
	}
)

func init() {
	questionsTable.ForeignKeys[0].RefTable = testsTable
	resultsTable.ForeignKeys[0].RefTable = testsTable
	answersTable.ForeignKeys[0].RefTable = resultsTable
	scoresTable.ForeignKeys[0].RefTable = universitiesTable
	recommendationsTable.ForeignKeys[0].RefTable = universitiesTable
	recommendationsTable.ForeignKeys[1].RefTable = recommendationRunsTable
}
