package service

import (
	"testing"
	"time"

	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/testutil"
	"skill_matrix_backend/pkg/lock"

	"gorm.io/gorm"
)

type engineFixture struct {
	db       *gorm.DB
	catalog  *testutil.Catalog
	sessions *SessionManager
	answers  *AnswerRecorder
	sweeper  *DeadlineSweeper
	clock    time.Time
}

func newEngineFixture(t *testing.T, opts ...testutil.CatalogOption) *engineFixture {
	t.Helper()

	db := testutil.NewDB(t)
	f := &engineFixture{
		db:      db,
		catalog: testutil.SeedCatalog(t, db, opts...),
		clock:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	catalogRepo := repository.NewCatalogRepository(db, nil, 0)
	assessmentRepo := repository.NewAssessmentRepository(db)
	locker := lock.NewMemoryLocker()

	f.sessions = NewSessionManager(catalogRepo, assessmentRepo, locker)
	f.sessions.now = f.now
	f.answers = NewAnswerRecorder(catalogRepo, assessmentRepo, locker)
	f.answers.now = f.now
	f.sweeper = NewDeadlineSweeper(f.sessions, 2)
	return f
}

func (f *engineFixture) now() time.Time {
	return f.clock
}

func (f *engineFixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}
