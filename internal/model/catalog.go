package model

// Catalog tables are authored elsewhere; the engine only reads them.

// swagger:model Skill
type Skill struct {
	UUIDBase
	Code string `gorm:"size:50;index" json:"code"`
	Name string `gorm:"size:255;not null" json:"name"`
}

func (Skill) TableName() string {
	return "skills"
}

// swagger:model TestTemplate
type TestTemplate struct {
	UUIDBase
	Title            string        `gorm:"size:255;not null" json:"title"`
	Description      string        `gorm:"type:text" json:"description"`
	TimeLimitMinutes *int          `json:"timeLimitMinutes"`
	PassingScore     float64       `json:"passingScore"`
	IsRandomized     bool          `gorm:"default:false" json:"isRandomized"`
	MaxQuestions     *int          `json:"maxQuestions"`
	IsActive         bool          `gorm:"index" json:"isActive"`
	Sections         []TestSection `gorm:"foreignKey:TemplateID" json:"sections,omitempty"`
}

func (TestTemplate) TableName() string {
	return "test_templates"
}

// HasTimeLimit is false for a nil or non-positive limit.
func (t *TestTemplate) HasTimeLimit() bool {
	return t.TimeLimitMinutes != nil && *t.TimeLimitMinutes > 0
}

type TestSection struct {
	UUIDBase
	TemplateID  string `gorm:"index;type:varchar(36);not null" json:"templateId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	// advisory only
	TimeLimitMinutes *int       `json:"timeLimitMinutes"`
	DisplayOrder     int        `gorm:"default:0" json:"displayOrder"`
	Questions        []Question `gorm:"foreignKey:SectionID" json:"questions,omitempty"`
}

func (TestSection) TableName() string {
	return "test_sections"
}

type Question struct {
	UUIDBase
	SectionID     string           `gorm:"index;type:varchar(36);not null" json:"sectionId"`
	SkillID       *string          `gorm:"index;type:varchar(36)" json:"skillId"`
	Skill         *Skill           `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
	Type          QuestionType     `gorm:"size:40;not null" json:"type"`
	Content       string           `gorm:"type:text;not null" json:"content"`
	CodeSnippet   string           `gorm:"type:text" json:"codeSnippet"`
	Points        int              `gorm:"not null" json:"points"`
	DisplayOrder  int              `gorm:"default:0" json:"displayOrder"`
	GradingRubric string           `gorm:"type:text" json:"gradingRubric"`
	IsActive      bool             `json:"isActive"`
	Options       []QuestionOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectOptionIDs returns the ids of options flagged correct, in display order.
func (q *Question) CorrectOptionIDs() []string {
	ids := make([]string, 0, 1)
	for _, o := range q.Options {
		if o.IsCorrect {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

func (q *Question) HasOption(id string) bool {
	for _, o := range q.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}

type QuestionOption struct {
	UUIDBase
	QuestionID   string `gorm:"index;type:varchar(36);not null" json:"questionId"`
	Content      string `gorm:"type:text;not null" json:"content"`
	IsCorrect    bool   `gorm:"default:false" json:"isCorrect"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
	Explanation  string `gorm:"type:text" json:"explanation"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
