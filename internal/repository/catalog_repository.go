package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository reads templates, sections and questions. Template headers are
// cached in redis when a client is configured.
type CatalogRepository struct {
	DB       *gorm.DB
	Redis    *redis.Client
	cacheTTL time.Duration
}

func NewCatalogRepository(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) *CatalogRepository {
	return &CatalogRepository{DB: db, Redis: rdb, cacheTTL: cacheTTL}
}

func templateCacheKey(id string) string {
	return fmt.Sprintf("catalog:template:%s", id)
}

func (r *CatalogRepository) FindTemplate(ctx context.Context, id string, deleted SoftDelete) (*model.TestTemplate, error) {
	cacheable := r.Redis != nil && deleted == ExcludeDeleted && r.cacheTTL > 0
	if cacheable {
		if raw, err := r.Redis.Get(ctx, templateCacheKey(id)).Bytes(); err == nil {
			var cached model.TestTemplate
			if err := json.Unmarshal(raw, &cached); err == nil {
				if err := r.refreshState(ctx, &cached); err != nil {
					return nil, err
				}
				return &cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("catalog cache read failed", zap.String("templateId", id), zap.Error(err))
		}
	}

	var tpl model.TestTemplate
	err := r.DB.WithContext(ctx).
		Scopes(deleted.Scope("deleted_at")).
		First(&tpl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	if cacheable {
		if raw, err := json.Marshal(&tpl); err == nil {
			if err := r.Redis.Set(ctx, templateCacheKey(id), raw, r.cacheTTL).Err(); err != nil {
				logger.Log.Warn("catalog cache write failed", zap.String("templateId", id), zap.Error(err))
			}
		}
	}
	return &tpl, nil
}

// refreshState re-reads the columns other services toggle, so a cached header
// never outlives a deactivation or delete.
func (r *CatalogRepository) refreshState(ctx context.Context, tpl *model.TestTemplate) error {
	var row struct {
		IsActive  bool
		DeletedAt *time.Time
	}
	res := r.DB.WithContext(ctx).
		Model(&model.TestTemplate{}).
		Select("is_active", "deleted_at").
		Where("id = ?", tpl.ID).
		Scan(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 || row.DeletedAt != nil {
		return gorm.ErrRecordNotFound
	}
	tpl.IsActive = row.IsActive
	return nil
}

// ListActiveSections returns the template's live sections in display order, each
// holding its active questions in display order.
func (r *CatalogRepository) ListActiveSections(ctx context.Context, templateID string) ([]model.TestSection, error) {
	var sections []model.TestSection
	err := r.DB.WithContext(ctx).
		Scopes(ExcludeDeleted.Scope("deleted_at")).
		Where("template_id = ?", templateID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(ExcludeDeleted.Scope("deleted_at")).
				Where("is_active = ?", true).
				Order("display_order ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(ExcludeDeleted.Scope("deleted_at")).Order("display_order ASC")
		}).
		Preload("Questions.Skill").
		Order("display_order ASC").
		Find(&sections).Error
	return sections, err
}

// FindQuestions loads questions by id with options and skill. Missing ids are simply absent from the map.
func (r *CatalogRepository) FindQuestions(ctx context.Context, ids []string, deleted SoftDelete) (map[string]*model.Question, error) {
	result := make(map[string]*model.Question, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var questions []model.Question
	err := r.DB.WithContext(ctx).
		Scopes(deleted.Scope("deleted_at")).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(deleted.Scope("deleted_at")).Order("display_order ASC")
		}).
		Preload("Skill").
		Where("id IN ?", ids).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	for i := range questions {
		result[questions[i].ID] = &questions[i]
	}
	return result, nil
}

func (r *CatalogRepository) FindSections(ctx context.Context, ids []string, deleted SoftDelete) ([]model.TestSection, error) {
	var sections []model.TestSection
	if len(ids) == 0 {
		return sections, nil
	}
	err := r.DB.WithContext(ctx).
		Scopes(deleted.Scope("deleted_at")).
		Where("id IN ?", ids).
		Order("display_order ASC").
		Find(&sections).Error
	return sections, err
}

type TemplateSummaryRow struct {
	model.TestTemplate
	QuestionCount int `json:"questionCount"`
}

func (r *CatalogRepository) ListActiveTemplates(ctx context.Context) ([]TemplateSummaryRow, error) {
	var rows []TemplateSummaryRow
	err := r.DB.WithContext(ctx).Table("test_templates t").
		Select("t.*, " +
			"(SELECT COUNT(*) FROM questions q JOIN test_sections s ON s.id = q.section_id " +
			"WHERE s.template_id = t.id AND q.is_active = ? AND q.deleted_at IS NULL AND s.deleted_at IS NULL) AS question_count", true).
		Where("t.deleted_at IS NULL AND t.is_active = ?", true).
		Order("t.title ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *CatalogRepository) SaveSkills(ctx context.Context, skills []model.Skill) error {
	if len(skills) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&skills).Error
}

// SaveTemplate upserts a whole template tree by primary key. Only the seed command calls it.
func (r *CatalogRepository) SaveTemplate(ctx context.Context, tpl *model.TestTemplate) error {
	err := r.DB.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(tpl).Error
	if err != nil {
		return err
	}
	if r.Redis != nil {
		r.Redis.Del(ctx, templateCacheKey(tpl.ID))
	}
	return nil
}

// WithDB returns a copy bound to db, typically an open transaction.
func (r *CatalogRepository) WithDB(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db, Redis: r.Redis, cacheTTL: r.cacheTTL}
}
