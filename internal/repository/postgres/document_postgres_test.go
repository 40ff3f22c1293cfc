package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/model"
)

var documentColumns = []string{"id", "company_id", "name", "content_type", "size", "storage_path", "created_at"}

func newDocumentRow(doc *model.Document) *sqlmock.Rows {
	return sqlmock.NewRows(documentColumns).
		AddRow(doc.ID, doc.CompanyID, doc.Name, doc.ContentType, doc.Size, doc.StoragePath, doc.CreatedAt)
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	doc := &model.Document{
		ID:          "doc-1",
		CompanyID:   "co-1",
		Name:        "pitch.pdf",
		ContentType: "application/pdf",
		Size:        1024,
		StoragePath: "co-1/abc.pdf",
		CreatedAt:   time.Now().UTC(),
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO documents`).
			WithArgs(doc.ID, doc.CompanyID, doc.Name, doc.ContentType, doc.Size, doc.StoragePath, doc.CreatedAt).
			WillReturnRows(newDocumentRow(doc))

		got, err := repo.Create(context.Background(), doc)
		assert.NoError(t, err)
		assert.Equal(t, doc.ID, got.ID)
		assert.Equal(t, doc.StoragePath, got.StoragePath)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO documents`).
			WillReturnError(errors.New("insert failed"))

		got, err := repo.Create(context.Background(), doc)
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)

	t.Run("found", func(t *testing.T) {
		doc := &model.Document{ID: "doc-1", CompanyID: "co-1", Name: "deck.pptx", ContentType: "application/vnd.ms-powerpoint", Size: 7, StoragePath: "co-1/x.pptx", CreatedAt: time.Now()}
		mock.ExpectQuery(`SELECT .+ FROM documents`).
			WithArgs("doc-1").
			WillReturnRows(newDocumentRow(doc))

		got, err := repo.FindByID(context.Background(), "doc-1")
		assert.NoError(t, err)
		assert.Equal(t, "co-1", got.CompanyID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM documents`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.FindByID(context.Background(), "missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, got)
	})
}

func TestDocumentPostgres_ListByCompany(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)

	t.Run("returns rows newest first", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(documentColumns).
			AddRow("doc-2", "co-1", "b.pdf", "application/pdf", int64(2), "co-1/b.pdf", now).
			AddRow("doc-1", "co-1", "a.pdf", "application/pdf", int64(1), "co-1/a.pdf", now.Add(-time.Hour))
		mock.ExpectQuery(`SELECT .+ FROM documents`).
			WithArgs("co-1").
			WillReturnRows(rows)

		got, err := repo.ListByCompany(context.Background(), "co-1")
		assert.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "doc-2", got[0].ID)
		assert.Equal(t, "doc-1", got[1].ID)
	})

	t.Run("empty result is a slice, not nil", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM documents`).
			WithArgs("co-2").
			WillReturnRows(sqlmock.NewRows(documentColumns))

		got, err := repo.ListByCompany(context.Background(), "co-2")
		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Len(t, got, 0)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM documents`).
			WillReturnError(errors.New("query failed"))

		got, err := repo.ListByCompany(context.Background(), "co-1")
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)

	t.Run("deletes row", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM documents`).
			WithArgs("doc-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), "doc-1"))
	})

	t.Run("missing row is not an error", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM documents`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Delete(context.Background(), "missing"))
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM documents`).
			WillReturnError(errors.New("delete failed"))

		assert.Error(t, repo.Delete(context.Background(), "doc-1"))
	})
}
