package service

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"time"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/util"
	"skill_matrix_backend/pkg/lock"
	"skill_matrix_backend/pkg/logger"
	"skill_matrix_backend/pkg/monitoring"
	"skill_matrix_backend/pkg/tracing"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

const (
	TriggerManual   = "manual"
	TriggerDeadline = "deadline"
)

// SessionManager owns the assessment state machine:
// Draft/Pending -> InProgress -> Completed.
type SessionManager struct {
	Catalog     *repository.CatalogRepository
	Assessments *repository.AssessmentRepository
	Locker      lock.Locker

	now     func() time.Time
	shuffle func(n int, swap func(i, j int))
}

func NewSessionManager(catalog *repository.CatalogRepository, assessments *repository.AssessmentRepository, locker lock.Locker) *SessionManager {
	return &SessionManager{
		Catalog:     catalog,
		Assessments: assessments,
		Locker:      locker,
		now:         func() time.Time { return time.Now().UTC() },
		shuffle:     rand.Shuffle,
	}
}

// IsExpired reports whether the deadline has passed. Unbounded sessions never expire.
func IsExpired(a *model.Assessment, now time.Time) bool {
	return a.MustCompleteBy != nil && now.After(*a.MustCompleteBy)
}

// RemainingSeconds is nil for unbounded sessions and never negative.
func RemainingSeconds(a *model.Assessment, now time.Time) *int64 {
	if a.MustCompleteBy == nil {
		return nil
	}
	left := int64(a.MustCompleteBy.Sub(now) / time.Second)
	if left < 0 {
		left = 0
	}
	return &left
}

func (s *SessionManager) IsExpired(a *model.Assessment) bool {
	return IsExpired(a, s.now())
}

func (s *SessionManager) RemainingSeconds(a *model.Assessment) *int64 {
	return RemainingSeconds(a, s.now())
}

// Start opens a session for the pair, or resumes the one already in progress.
func (s *SessionManager) Start(ctx context.Context, employeeID, templateID string) (view *SessionView, err error) {
	ctx, span := tracing.StartSpan(ctx, "SessionManager.Start", "")
	defer func() { tracing.EndSpan(span, err) }()

	if employeeID == "" {
		return nil, util.ErrEmployeeRequired
	}
	if templateID == "" {
		return nil, util.ErrTemplateRequired
	}

	unlock, err := s.Locker.Lock(ctx, "start:"+employeeID+":"+templateID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := s.Assessments.FindInProgress(ctx, employeeID, templateID)
	switch {
	case err == nil:
		logger.Log.Info("Resuming assessment in progress",
			zap.String("assessmentId", existing.ID),
			zap.String("employeeId", employeeID),
		)
		return s.loadView(ctx, s.Catalog, s.Assessments, existing)
	case !repository.IsNotFound(err):
		return nil, err
	}

	tpl, err := s.activeTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	a := &model.Assessment{
		EmployeeID:     employeeID,
		TestTemplateID: tpl.ID,
		Title:          tpl.Title,
		Status:         model.AssessmentStatusInProgress,
	}
	if err := s.begin(ctx, a, tpl); err != nil {
		return nil, err
	}
	if err := s.Assessments.Create(ctx, a); err != nil {
		return nil, err
	}

	monitoring.AssessmentsStarted.WithLabelValues("direct").Inc()
	logger.Log.Info("Assessment started",
		zap.String("assessmentId", a.ID),
		zap.String("employeeId", employeeID),
		zap.String("templateId", tpl.ID),
		zap.Int("questions", len(a.QuestionIDs)),
	)
	return s.loadView(ctx, s.Catalog, s.Assessments, a)
}

// Assign creates a Pending assessment that the employee starts later through a shared link.
func (s *SessionManager) Assign(ctx context.Context, employeeID, templateID, title string) (*model.Assessment, error) {
	if employeeID == "" {
		return nil, util.ErrEmployeeRequired
	}
	if templateID == "" {
		return nil, util.ErrTemplateRequired
	}

	tpl, err := s.activeTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = tpl.Title
	}

	a := &model.Assessment{
		EmployeeID:     employeeID,
		TestTemplateID: tpl.ID,
		Title:          title,
		Status:         model.AssessmentStatusPending,
	}
	if err := s.Assessments.Create(ctx, a); err != nil {
		return nil, err
	}

	logger.Log.Info("Assessment assigned", zap.String("assessmentId", a.ID), zap.String("employeeId", employeeID))
	return a, nil
}

// StartExisting starts an assigned assessment in place. A session already in
// progress is resumed; a finished one is rejected.
func (s *SessionManager) StartExisting(ctx context.Context, assessmentID string) (view *SessionView, err error) {
	ctx, span := tracing.StartSpan(ctx, "SessionManager.StartExisting", assessmentID)
	defer func() { tracing.EndSpan(span, err) }()

	unlock, err := s.Locker.Lock(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	a, err := s.findAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	switch {
	case a.Status == model.AssessmentStatusInProgress:
		return s.loadView(ctx, s.Catalog, s.Assessments, a)
	case !a.Status.NotStarted():
		return nil, util.ErrAssessmentFinished
	}

	unlockPair, err := s.Locker.Lock(ctx, "start:"+a.EmployeeID+":"+a.TestTemplateID)
	if err != nil {
		return nil, err
	}
	defer unlockPair()

	// at most one session in progress per employee and template
	existing, err := s.Assessments.FindInProgress(ctx, a.EmployeeID, a.TestTemplateID)
	switch {
	case err == nil:
		logger.Log.Info("Resuming assessment in progress instead of assigned one",
			zap.String("assessmentId", existing.ID),
			zap.String("assignedId", a.ID),
		)
		return s.loadView(ctx, s.Catalog, s.Assessments, existing)
	case !repository.IsNotFound(err):
		return nil, err
	}

	tpl, err := s.activeTemplate(ctx, a.TestTemplateID)
	if err != nil {
		return nil, err
	}
	if err := s.begin(ctx, a, tpl); err != nil {
		return nil, err
	}

	if err := s.Assessments.MarkStarted(ctx, a); err != nil {
		if !errors.Is(err, repository.ErrStaleState) {
			return nil, err
		}
		// another replica started it first
		return s.Continue(ctx, assessmentID)
	}

	monitoring.AssessmentsStarted.WithLabelValues("link").Inc()
	logger.Log.Info("Assigned assessment started", zap.String("assessmentId", a.ID))
	return s.loadView(ctx, s.Catalog, s.Assessments, a)
}

// Continue returns the in-progress view with recorded answers.
func (s *SessionManager) Continue(ctx context.Context, assessmentID string) (view *SessionView, err error) {
	ctx, span := tracing.StartSpan(ctx, "SessionManager.Continue", assessmentID)
	defer func() { tracing.EndSpan(span, err) }()

	a, err := s.Assessments.FindByID(ctx, assessmentID, repository.ExcludeDeleted)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrInProgressNotFound
		}
		return nil, err
	}
	if a.Status != model.AssessmentStatusInProgress {
		return nil, util.ErrInProgressNotFound
	}
	return s.loadView(ctx, s.Catalog, s.Assessments, a)
}

// PublicState backs the shared-link landing page.
func (s *SessionManager) PublicState(ctx context.Context, assessmentID string) (interface{}, error) {
	a, err := s.findAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	switch {
	case a.Status == model.AssessmentStatusInProgress:
		return s.loadView(ctx, s.Catalog, s.Assessments, a)
	case !a.Status.NotStarted():
		return nil, util.ErrInProgressNotFound
	}
	return &PublicTestState{
		AssessmentID: a.ID,
		Title:        a.Title,
		Status:       a.Status,
		NeedsStart:   true,
	}, nil
}

// Submit finalizes the assessment. Submitting a finished assessment returns its
// result again without touching the stored score.
func (s *SessionManager) Submit(ctx context.Context, assessmentID string) (*AssessmentResult, error) {
	return s.submit(ctx, assessmentID, TriggerManual)
}

func (s *SessionManager) submit(ctx context.Context, assessmentID, trigger string) (result *AssessmentResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "SessionManager.Submit", assessmentID)
	defer func() { tracing.EndSpan(span, err) }()

	unlock, err := s.Locker.Lock(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	resubmit := false
	err = s.Assessments.Transaction(ctx, func(tx *repository.AssessmentRepository) error {
		catalog := s.Catalog.WithDB(tx.DB)

		a, err := tx.LockByID(ctx, assessmentID)
		if err != nil {
			if repository.IsNotFound(err) {
				return util.ErrAssessmentNotFound
			}
			return err
		}

		switch {
		case a.Status.NotStarted():
			return util.ErrAssessmentNotStarted
		case a.Status.Finished():
			resubmit = true
			result, err = s.buildResult(ctx, catalog, tx, a)
			return err
		}

		now := s.now()
		a.Status = model.AssessmentStatusCompleted
		a.CompletedAt = &now

		result, err = s.buildResult(ctx, catalog, tx, a)
		if err != nil {
			return err
		}
		summary := repository.ScoreSummary{
			Score:      result.TotalScore,
			MaxScore:   result.MaxScore,
			Percentage: result.Percentage,
			Passed:     result.Passed,
		}
		return tx.Complete(ctx, a.ID, now, summary, result.SkillResultModels())
	})
	if errors.Is(err, repository.ErrStaleState) {
		// lost a race with another submitter
		return s.Result(ctx, assessmentID)
	}
	if err != nil {
		return nil, err
	}

	if resubmit {
		logger.Log.Info("Assessment already submitted, returning stored result", zap.String("assessmentId", assessmentID))
		return result, nil
	}

	timeliness := "on_time"
	if result.SubmittedLate {
		timeliness = "late"
	}
	monitoring.AssessmentsSubmitted.WithLabelValues(timeliness, trigger).Inc()
	monitoring.ScorePercentage.Observe(result.Percentage)

	logger.Log.Info("Assessment submitted",
		zap.String("assessmentId", assessmentID),
		zap.String("trigger", trigger),
		zap.Int("score", result.TotalScore),
		zap.Int("maxScore", result.MaxScore),
		zap.Float64("percentage", result.Percentage),
		zap.Bool("passed", result.Passed),
		zap.Bool("late", result.SubmittedLate),
	)
	return result, nil
}

// Result rebuilds the result of a finished assessment.
func (s *SessionManager) Result(ctx context.Context, assessmentID string) (result *AssessmentResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "SessionManager.Result", assessmentID)
	defer func() { tracing.EndSpan(span, err) }()

	a, err := s.Assessments.FindByID(ctx, assessmentID, repository.ExcludeDeleted)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrResultNotAvailable
		}
		return nil, err
	}
	if !a.Status.Finished() {
		return nil, util.ErrResultNotAvailable
	}
	return s.buildResult(ctx, s.Catalog, s.Assessments, a)
}

// GetByID returns the assessment with its responses and stored skill results.
func (s *SessionManager) GetByID(ctx context.Context, assessmentID string) (*model.Assessment, error) {
	a, err := s.findAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if a.Responses, err = s.Assessments.ListResponses(ctx, a.ID); err != nil {
		return nil, err
	}
	if a.SkillResults, err = s.Assessments.ListSkillResults(ctx, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *SessionManager) ListByEmployee(ctx context.Context, employeeID string, page, limit int) (*util.PageResponse, error) {
	if employeeID == "" {
		return nil, util.ErrEmployeeRequired
	}
	assessments, total, err := s.Assessments.ListByEmployee(ctx, employeeID, page, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]AssessmentSummary, 0, len(assessments))
	if err := copier.Copy(&summaries, &assessments); err != nil {
		return nil, err
	}
	return &util.PageResponse{List: summaries, Total: total, Page: page, Limit: limit}, nil
}

// AvailableTests lists active templates with the employee's attempt history.
func (s *SessionManager) AvailableTests(ctx context.Context, employeeID string) ([]AvailableTest, error) {
	if employeeID == "" {
		return nil, util.ErrEmployeeRequired
	}
	templates, err := s.Catalog.ListActiveTemplates(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.Assessments.AttemptStats(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	tests := make([]AvailableTest, 0, len(templates))
	for _, t := range templates {
		stat := stats[t.ID]
		tests = append(tests, AvailableTest{
			TestTemplateID:   t.ID,
			Title:            t.Title,
			Description:      t.Description,
			TimeLimitMinutes: t.TimeLimitMinutes,
			PassingScore:     t.PassingScore,
			QuestionCount:    t.QuestionCount,
			Attempts:         stat.Attempts,
			BestPercentage:   stat.BestPercentage,
		})
	}
	return tests, nil
}

func (s *SessionManager) findAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	a, err := s.Assessments.FindByID(ctx, id, repository.ExcludeDeleted)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *SessionManager) activeTemplate(ctx context.Context, templateID string) (*model.TestTemplate, error) {
	tpl, err := s.Catalog.FindTemplate(ctx, templateID, repository.ExcludeDeleted)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrTemplateNotFound
		}
		return nil, err
	}
	if !tpl.IsActive {
		return nil, util.ErrTemplateNotFound
	}
	return tpl, nil
}

// begin stamps the start time, the deadline and the question set on a.
func (s *SessionManager) begin(ctx context.Context, a *model.Assessment, tpl *model.TestTemplate) error {
	sections, err := s.Catalog.ListActiveSections(ctx, tpl.ID)
	if err != nil {
		return err
	}

	now := s.now()
	a.StartedAt = &now
	a.MustCompleteBy = nil
	if tpl.HasTimeLimit() {
		deadline := now.Add(time.Duration(*tpl.TimeLimitMinutes) * time.Minute)
		a.MustCompleteBy = &deadline
	}
	a.QuestionIDs = s.materialize(tpl, sections)
	return nil
}

// materialize picks the ordered question set. Randomized templates draw from the
// shuffled pool; the result stays grouped by section so numbering matches the view.
func (s *SessionManager) materialize(tpl *model.TestTemplate, sections []model.TestSection) []string {
	type candidate struct {
		id          string
		sectionRank int
	}

	pool := make([]candidate, 0)
	for rank, section := range sections {
		for _, q := range section.Questions {
			pool = append(pool, candidate{id: q.ID, sectionRank: rank})
		}
	}

	if tpl.IsRandomized {
		s.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	}
	if tpl.MaxQuestions != nil && *tpl.MaxQuestions > 0 && len(pool) > *tpl.MaxQuestions {
		pool = pool[:*tpl.MaxQuestions]
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].sectionRank < pool[j].sectionRank })

	ids := make([]string, len(pool))
	for i, c := range pool {
		ids[i] = c.id
	}
	return ids
}

func (s *SessionManager) buildResult(ctx context.Context, catalog *repository.CatalogRepository, assessments *repository.AssessmentRepository, a *model.Assessment) (*AssessmentResult, error) {
	in, err := loadResultInput(ctx, catalog, assessments, a)
	if err != nil {
		return nil, err
	}
	return BuildResult(in), nil
}

func loadResultInput(ctx context.Context, catalog *repository.CatalogRepository, assessments *repository.AssessmentRepository, a *model.Assessment) (ResultInput, error) {
	tpl, err := catalog.FindTemplate(ctx, a.TestTemplateID, repository.IncludeDeleted)
	if err != nil && !repository.IsNotFound(err) {
		return ResultInput{}, err
	}
	questions, err := catalog.FindQuestions(ctx, a.QuestionIDs, repository.IncludeDeleted)
	if err != nil {
		return ResultInput{}, err
	}
	responses, err := assessments.ListResponses(ctx, a.ID)
	if err != nil {
		return ResultInput{}, err
	}
	return ResultInput{Assessment: a, Template: tpl, Questions: questions, Responses: responses}, nil
}

func (s *SessionManager) loadView(ctx context.Context, catalog *repository.CatalogRepository, assessments *repository.AssessmentRepository, a *model.Assessment) (*SessionView, error) {
	in, err := loadResultInput(ctx, catalog, assessments, a)
	if err != nil {
		return nil, err
	}

	sectionIDs := make([]string, 0)
	seen := make(map[string]bool)
	for _, qid := range a.QuestionIDs {
		if q := in.Questions[qid]; q != nil && !seen[q.SectionID] {
			seen[q.SectionID] = true
			sectionIDs = append(sectionIDs, q.SectionID)
		}
	}
	sections, err := catalog.FindSections(ctx, sectionIDs, repository.IncludeDeleted)
	if err != nil {
		return nil, err
	}
	return buildSessionView(in, sections, s.now())
}

func buildSessionView(in ResultInput, sections []model.TestSection, now time.Time) (*SessionView, error) {
	a := in.Assessment
	view := &SessionView{
		AssessmentID:     a.ID,
		EmployeeID:       a.EmployeeID,
		TestTemplateID:   a.TestTemplateID,
		Title:            a.Title,
		Status:           a.Status,
		StartedAt:        a.StartedAt,
		MustCompleteBy:   a.MustCompleteBy,
		RemainingSeconds: RemainingSeconds(a, now),
		Sections:         make([]SectionView, 0, len(sections)),
	}
	if in.Template != nil {
		view.Description = in.Template.Description
		view.TimeLimitMinutes = in.Template.TimeLimitMinutes
	}

	sectionByID := make(map[string]*model.TestSection, len(sections))
	for i := range sections {
		sectionByID[sections[i].ID] = &sections[i]
	}
	responses := make(map[string]*model.AssessmentResponse, len(in.Responses))
	for i := range in.Responses {
		responses[in.Responses[i].QuestionID] = &in.Responses[i]
	}

	var current *SectionView
	for i, qid := range a.QuestionIDs {
		q := in.Questions[qid]
		if q == nil {
			continue
		}
		if current == nil || current.ID != q.SectionID {
			sv := SectionView{ID: q.SectionID, Questions: make([]QuestionView, 0)}
			if sec := sectionByID[q.SectionID]; sec != nil {
				sv.Title = sec.Title
				sv.Description = sec.Description
				sv.DisplayOrder = sec.DisplayOrder
				sv.TimeLimitMinutes = sec.TimeLimitMinutes
			}
			view.Sections = append(view.Sections, sv)
			current = &view.Sections[len(view.Sections)-1]
		}

		qv := QuestionView{
			ID:             q.ID,
			QuestionNumber: i + 1,
			Type:           q.Type,
			Content:        q.Content,
			CodeSnippet:    q.CodeSnippet,
			Points:         q.Points,
			SkillID:        q.SkillID,
			Options:        make([]OptionView, 0, len(q.Options)),
		}
		if q.Skill != nil {
			qv.SkillName = q.Skill.Name
		}
		if err := copier.Copy(&qv.Options, &q.Options); err != nil {
			return nil, err
		}
		if resp := responses[q.ID]; resp != nil {
			qv.Answered = true
			qv.SelectedOptionIDs = []string(resp.SelectedOptionIDs)
			qv.TextResponse = resp.TextResponse
			qv.CodeResponse = resp.CodeResponse
			qv.TimeSpentSeconds = resp.TimeSpentSeconds
			view.AnsweredCount++
		}

		current.Questions = append(current.Questions, qv)
		view.TotalQuestions++
		view.TotalPoints += q.Points
	}
	return view, nil
}
