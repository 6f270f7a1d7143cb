package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-screener/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

var extractionColumns = []string{
	"id", "filename", "format", "size_bytes", "page_count", "ocr_pages",
	"status", "error_message", "duration_ms", "created_at",
}

func TestExtractionRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExtractionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "extractions"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	extraction := &models.Extraction{
		Filename:  "cv.pdf",
		Format:    "pdf",
		SizeBytes: 2048,
		PageCount: 2,
		OCRPages:  1,
		Status:    models.StatusCompleted,
	}
	err := repo.Create(extraction)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, extraction.ID, "Create assigns an id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExtractionRepository_CreateError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExtractionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "extractions"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Create(&models.Extraction{ID: uuid.New(), Status: models.StatusFailed})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create extraction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExtractionRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExtractionRepository(db)

	id := uuid.New()
	createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(extractionColumns).
		AddRow(id.String(), "cv.docx", "docx", 4096, 0, 0, "completed", nil, 12, createdAt)
	mock.ExpectQuery(`SELECT \* FROM "extractions" WHERE id = \$1`).
		WillReturnRows(rows)

	extraction, err := repo.FindByID(id)

	require.NoError(t, err)
	assert.Equal(t, id, extraction.ID)
	assert.Equal(t, "cv.docx", extraction.Filename)
	assert.Equal(t, models.StatusCompleted, extraction.Status)
	assert.Equal(t, int64(4096), extraction.SizeBytes)
	assert.Nil(t, extraction.ErrorMessage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExtractionRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExtractionRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "extractions" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(extractionColumns))

	_, err := repo.FindByID(uuid.New())

	assert.ErrorIs(t, err, ErrExtractionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoopExtractionRepository(t *testing.T) {
	repo := NewNoopExtractionRepository()

	assert.ErrorIs(t, repo.Create(&models.Extraction{}), ErrAuditDisabled)

	_, err := repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, ErrExtractionNotFound)
}
