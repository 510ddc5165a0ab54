// Package seed loads a demo catalog from YAML. It runs only from the migrate
// command and is never reachable from a request.
package seed

import (
	"context"
	"fmt"
	"os"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/repository"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const defaultPassingScore = 70

type File struct {
	Skills       []Skill    `yaml:"skills"`
	TemplateDefs []Template `yaml:"templates"`
}

type Skill struct {
	ID   string `yaml:"id"`
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type Template struct {
	ID               string    `yaml:"id"`
	Title            string    `yaml:"title"`
	Description      string    `yaml:"description"`
	TimeLimitMinutes *int      `yaml:"timeLimitMinutes"`
	PassingScore     *float64  `yaml:"passingScore"`
	IsRandomized     bool      `yaml:"isRandomized"`
	MaxQuestions     *int      `yaml:"maxQuestions"`
	Inactive         bool      `yaml:"inactive"`
	Sections         []Section `yaml:"sections"`
}

type Section struct {
	Title            string     `yaml:"title"`
	Description      string     `yaml:"description"`
	TimeLimitMinutes *int       `yaml:"timeLimitMinutes"`
	Questions        []Question `yaml:"questions"`
}

type Question struct {
	Skill       string   `yaml:"skill"`
	Type        string   `yaml:"type"`
	Content     string   `yaml:"content"`
	CodeSnippet string   `yaml:"codeSnippet"`
	Points      *int     `yaml:"points"`
	Rubric      string   `yaml:"rubric"`
	Options     []Option `yaml:"options"`
}

type Option struct {
	Content     string `yaml:"content"`
	Correct     bool   `yaml:"correct"`
	Explanation string `yaml:"explanation"`
}

func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

// childID derives a stable id from the template id so re-seeding updates rows in place.
func childID(parent, kind string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s/%s/%d", parent, kind, index))).String()
}

// Templates converts the file into catalog models, rejecting unknown question types.
// Skills are referenced by code. Templates without an id get a random one.
func (f *File) Templates() ([]model.TestTemplate, error) {
	skillIDs := make(map[string]string, len(f.Skills))
	for _, s := range f.Skills {
		skillIDs[s.Code] = s.ID
	}

	templates := make([]model.TestTemplate, 0, len(f.TemplateDefs))
	for _, t := range f.TemplateDefs {
		tpl := model.TestTemplate{
			Title:            t.Title,
			Description:      t.Description,
			TimeLimitMinutes: t.TimeLimitMinutes,
			PassingScore:     defaultPassingScore,
			IsRandomized:     t.IsRandomized,
			MaxQuestions:     t.MaxQuestions,
			IsActive:         !t.Inactive,
		}
		tpl.ID = t.ID
		if tpl.ID == "" {
			tpl.ID = model.GenerateUUID()
		}
		if t.PassingScore != nil {
			tpl.PassingScore = *t.PassingScore
		}

		for si, s := range t.Sections {
			section := model.TestSection{
				Title:            s.Title,
				Description:      s.Description,
				TimeLimitMinutes: s.TimeLimitMinutes,
				DisplayOrder:     si + 1,
			}
			section.ID = childID(tpl.ID, "section", si)
			for qi, q := range s.Questions {
				qt, err := model.ParseQuestionType(q.Type)
				if err != nil {
					return nil, fmt.Errorf("template %q section %q question %d: %w", t.Title, s.Title, qi+1, err)
				}
				question := model.Question{
					Type:          qt,
					Content:       q.Content,
					CodeSnippet:   q.CodeSnippet,
					Points:        1,
					DisplayOrder:  qi + 1,
					GradingRubric: q.Rubric,
					IsActive:      true,
				}
				question.ID = childID(section.ID, "question", qi)
				if q.Points != nil {
					question.Points = *q.Points
				}
				if q.Skill != "" {
					id, ok := skillIDs[q.Skill]
					if !ok {
						return nil, fmt.Errorf("template %q: unknown skill code %q", t.Title, q.Skill)
					}
					question.SkillID = &id
				}
				for oi, o := range q.Options {
					option := model.QuestionOption{
						Content:      o.Content,
						IsCorrect:    o.Correct,
						DisplayOrder: oi + 1,
						Explanation:  o.Explanation,
					}
					option.ID = childID(question.ID, "option", oi)
					question.Options = append(question.Options, option)
				}
				section.Questions = append(section.Questions, question)
			}
			tpl.Sections = append(tpl.Sections, section)
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}

// Apply upserts skills and templates. Templates without a fixed id are inserted again on every run.
func Apply(ctx context.Context, catalog *repository.CatalogRepository, f *File) (int, error) {
	skills := make([]model.Skill, 0, len(f.Skills))
	for _, s := range f.Skills {
		if s.ID == "" {
			return 0, fmt.Errorf("skill %q needs an id", s.Code)
		}
		skill := model.Skill{Code: s.Code, Name: s.Name}
		skill.ID = s.ID
		skills = append(skills, skill)
	}
	if err := catalog.SaveSkills(ctx, skills); err != nil {
		return 0, err
	}

	templates, err := f.Templates()
	if err != nil {
		return 0, err
	}
	for i := range templates {
		if err := catalog.SaveTemplate(ctx, &templates[i]); err != nil {
			return i, err
		}
	}
	return len(templates), nil
}
