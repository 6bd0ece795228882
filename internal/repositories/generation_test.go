package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/prepio/internal/models"
)

// statementStub stands in for the database. gorm runs in dry-run mode so
// statements are built but never sent; the stub captures the SQL and supplies
// the result.
type statementStub struct {
	sql  []string
	vars [][]any
	fill func(dest any)
	err  error
}

func (s *statementStub) callback(tx *gorm.DB) {
	s.sql = append(s.sql, tx.Statement.SQL.String())
	s.vars = append(s.vars, tx.Statement.Vars)
	if s.err != nil {
		tx.AddError(s.err)
		return
	}
	if s.fill != nil {
		s.fill(tx.Statement.Dest)
	}
}

func newStubbedRepository(t *testing.T, stub *statementStub) GenerationRepository {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=prepio dbname=prepio sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:stub_query", stub.callback))
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:stub_create", stub.callback))

	return NewGenerationRepository(db)
}

func TestFindByID(t *testing.T) {
	id := uuid.New()
	stub := &statementStub{fill: func(dest any) {
		record := dest.(*models.GenerationRecord)
		record.ID = id
		record.Kind = "questions"
		record.Outcome = models.OutcomeSucceeded
	}}
	repo := newStubbedRepository(t, stub)

	record, err := repo.FindByID(id)

	require.NoError(t, err)
	assert.Equal(t, id, record.ID)
	assert.Equal(t, models.OutcomeSucceeded, record.Outcome)
	require.Len(t, stub.sql, 1)
	assert.Contains(t, stub.sql[0], `FROM "generation_records" WHERE id = $1`)
	assert.Equal(t, id, stub.vars[0][0])
}

func TestFindByID_NotFound(t *testing.T) {
	repo := newStubbedRepository(t, &statementStub{err: gorm.ErrRecordNotFound})

	record, err := repo.FindByID(uuid.New())

	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NotErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindByID_QueryError(t *testing.T) {
	repo := newStubbedRepository(t, &statementStub{err: errors.New("connection reset")})

	_, err := repo.FindByID(uuid.New())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRecordNotFound)
	assert.Contains(t, err.Error(), "failed to find generation record")
}

func TestFindRecent_NewestFirst(t *testing.T) {
	newer, older := uuid.New(), uuid.New()
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	stub := &statementStub{fill: func(dest any) {
		*dest.(*[]models.GenerationRecord) = []models.GenerationRecord{
			{ID: newer, Kind: "feedback", CreatedAt: now},
			{ID: older, Kind: "questions", CreatedAt: now.Add(-time.Minute)},
		}
	}}
	repo := newStubbedRepository(t, stub)

	records, err := repo.FindRecent(2)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, newer, records[0].ID)
	require.Len(t, stub.sql, 1)
	assert.Contains(t, stub.sql[0], `ORDER BY created_at DESC LIMIT $1`)
	assert.Equal(t, []any{2}, stub.vars[0])
}

func TestFindRecent_QueryError(t *testing.T) {
	repo := newStubbedRepository(t, &statementStub{err: errors.New("connection reset")})

	records, err := repo.FindRecent(20)

	assert.Nil(t, records)
	assert.ErrorContains(t, err, "failed to list generation records")
}

func TestCreate(t *testing.T) {
	stub := &statementStub{}
	repo := newStubbedRepository(t, stub)

	err := repo.Create(&models.GenerationRecord{ID: uuid.New(), Kind: "questions", Outcome: models.OutcomeSucceeded})

	require.NoError(t, err)
	require.Len(t, stub.sql, 1)
	assert.Contains(t, stub.sql[0], `INSERT INTO "generation_records"`)
}

func TestCreate_WrapsDriverError(t *testing.T) {
	repo := newStubbedRepository(t, &statementStub{err: errors.New("duplicate key")})

	err := repo.Create(&models.GenerationRecord{ID: uuid.New(), Kind: "questions"})

	assert.ErrorContains(t, err, "failed to create generation record")
}
