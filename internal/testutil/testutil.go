// Package testutil opens throwaway databases and seeds a small catalog for tests.
package testutil

import (
	"testing"

	"skill_matrix_backend/internal/config"
	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database closed at test cleanup.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.InitDB(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, "test")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Catalog is a two-section template worth 7 points:
//
//	Go:     MultipleChoice (1), TrueFalse (1)        skill GO
//	Design: MultipleAnswer (2), LongAnswer (3)       skill DESIGN
type Catalog struct {
	GoSkill     model.Skill
	DesignSkill model.Skill
	Template    model.TestTemplate

	MultipleChoice *model.Question
	TrueFalse      *model.Question
	MultipleAnswer *model.Question
	LongAnswer     *model.Question
}

type CatalogOption func(*model.TestTemplate)

func WithTimeLimit(minutes int) CatalogOption {
	return func(t *model.TestTemplate) { t.TimeLimitMinutes = &minutes }
}

func WithRandomized(maxQuestions int) CatalogOption {
	return func(t *model.TestTemplate) {
		t.IsRandomized = true
		t.MaxQuestions = &maxQuestions
	}
}

func Inactive() CatalogOption {
	return func(t *model.TestTemplate) { t.IsActive = false }
}

func SeedCatalog(t *testing.T, db *gorm.DB, opts ...CatalogOption) *Catalog {
	t.Helper()

	c := &Catalog{
		GoSkill:     model.Skill{Code: "GO", Name: "Go"},
		DesignSkill: model.Skill{Code: "DESIGN", Name: "System design"},
	}
	require.NoError(t, db.Create(&c.GoSkill).Error)
	require.NoError(t, db.Create(&c.DesignSkill).Error)

	goID, designID := c.GoSkill.ID, c.DesignSkill.ID
	c.Template = model.TestTemplate{
		Title:        "Backend screening",
		Description:  "Go and design basics",
		PassingScore: 70,
		IsActive:     true,
		Sections: []model.TestSection{
			{
				Title:        "Go",
				DisplayOrder: 1,
				Questions: []model.Question{
					{
						SkillID:      &goID,
						Type:         model.QuestionTypeMultipleChoice,
						Content:      "Which keyword starts a goroutine?",
						Points:       1,
						DisplayOrder: 1,
						IsActive:     true,
						Options: []model.QuestionOption{
							{Content: "go", IsCorrect: true, DisplayOrder: 1, Explanation: "go f() runs f concurrently"},
							{Content: "async", DisplayOrder: 2},
						},
					},
					{
						SkillID:      &goID,
						Type:         model.QuestionTypeTrueFalse,
						Content:      "Reading a nil map panics.",
						Points:       1,
						DisplayOrder: 2,
						IsActive:     true,
						Options: []model.QuestionOption{
							{Content: "True", DisplayOrder: 1},
							{Content: "False", IsCorrect: true, DisplayOrder: 2},
						},
					},
				},
			},
			{
				Title:        "Design",
				DisplayOrder: 2,
				Questions: []model.Question{
					{
						SkillID:      &designID,
						Type:         model.QuestionTypeMultipleAnswer,
						Content:      "Which stores are key-value?",
						Points:       2,
						DisplayOrder: 1,
						IsActive:     true,
						Options: []model.QuestionOption{
							{Content: "Redis", IsCorrect: true, DisplayOrder: 1},
							{Content: "etcd", IsCorrect: true, DisplayOrder: 2},
							{Content: "PostgreSQL", DisplayOrder: 3},
						},
					},
					{
						SkillID:      &designID,
						Type:         model.QuestionTypeLongAnswer,
						Content:      "Describe a rate limiter.",
						Points:       3,
						DisplayOrder: 2,
						IsActive:     true,
					},
				},
			},
		},
	}
	for _, opt := range opts {
		opt(&c.Template)
	}
	require.NoError(t, db.Create(&c.Template).Error)

	c.MultipleChoice = &c.Template.Sections[0].Questions[0]
	c.TrueFalse = &c.Template.Sections[0].Questions[1]
	c.MultipleAnswer = &c.Template.Sections[1].Questions[0]
	c.LongAnswer = &c.Template.Sections[1].Questions[1]
	return c
}

// QuestionIDs lists the template's questions in section and display order.
func (c *Catalog) QuestionIDs() []string {
	return []string{c.MultipleChoice.ID, c.TrueFalse.ID, c.MultipleAnswer.ID, c.LongAnswer.ID}
}

// Option returns the id of the option at index i.
func Option(q *model.Question, i int) string {
	return q.Options[i].ID
}
