package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdnotes/internal/notes/adapters/postgres"
	"mdnotes/internal/notes/domain/entities"
	"mdnotes/internal/notes/ports/repositories"
	"mdnotes/pkg/logger"
)

var errDatabaseConnection = errors.New("database connection failed")

const (
	noteID      = "3f2ab7de-9f40-4e6a-9a3c-8b1e2f55c001"
	otherNoteID = "3f2ab7de-9f40-4e6a-9a3c-8b1e2f55c002"
)

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	return logger.NewContext(context.Background(), testLogger)
}

func TestNewNoteRepository(t *testing.T) {
	mockPool := &pgxpool.Pool{}

	repo := postgres.NewNoteRepository(mockPool)

	assert.NotNil(t, repo, "Repository should not be nil")
	assert.Implements(t, (*repositories.NoteRepository)(nil), repo, "Repository should implement NoteRepository interface")
}

func TestNoteRepository_Create(t *testing.T) {
	ctx := testContext(t)

	inputNote := entities.NewNote("Groceries", "Buy milk", []string{"home"})

	t.Run("successful note creation", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO notes \\(title, content, tags, created_at, updated_at\\) VALUES \\(\\$1, \\$2, \\$3, \\$4, \\$5\\) RETURNING id").
			WithArgs(inputNote.Title, inputNote.Content, inputNote.Tags, inputNote.CreatedAt, inputNote.UpdatedAt).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(noteID))

		repo := postgres.NewNoteRepository(mock)
		createdID, err := repo.Create(ctx, inputNote)

		require.NoError(t, err)
		require.Equal(t, noteID, createdID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database connection error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO notes").
			WithArgs(inputNote.Title, inputNote.Content, inputNote.Tags, inputNote.CreatedAt, inputNote.UpdatedAt).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewNoteRepository(mock)
		createdID, err := repo.Create(ctx, inputNote)

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to create note")
		assert.Empty(t, createdID)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_GetByID(t *testing.T) {
	ctx := testContext(t)

	createdAt := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2026, 1, 15, 12, 30, 0, 0, time.UTC)

	t.Run("note found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, title, content, tags, created_at, updated_at FROM notes WHERE id = \\$1").
			WithArgs(noteID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "title", "content", "tags", "created_at", "updated_at"}).
				AddRow(noteID, "Groceries", "Buy milk", []string{"home"}, createdAt, updatedAt))

		repo := postgres.NewNoteRepository(mock)
		note, err := repo.GetByID(ctx, noteID)

		require.NoError(t, err)
		require.NotNil(t, note)
		assert.Equal(t, noteID, note.ID)
		assert.Equal(t, "Groceries", note.Title)
		assert.Equal(t, []string{"home"}, note.Tags)
		assert.Equal(t, createdAt, note.CreatedAt)
		assert.Equal(t, updatedAt, note.UpdatedAt)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("note not found returns nil without error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, title, content, tags, created_at, updated_at FROM notes WHERE id = \\$1").
			WithArgs(otherNoteID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "title", "content", "tags", "created_at", "updated_at"}))

		repo := postgres.NewNoteRepository(mock)
		note, err := repo.GetByID(ctx, otherNoteID)

		require.NoError(t, err)
		assert.Nil(t, note)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database connection error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, title, content, tags, created_at, updated_at FROM notes WHERE id = \\$1").
			WithArgs(noteID).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewNoteRepository(mock)
		note, err := repo.GetByID(ctx, noteID)

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to get note")
		assert.Nil(t, note)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_List(t *testing.T) {
	ctx := testContext(t)

	createdAt := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2026, 1, 15, 12, 30, 0, 0, time.UTC)

	noteRows := func() *pgxmock.Rows {
		return pgxmock.NewRows([]string{"id", "title", "content", "tags", "created_at", "updated_at"}).
			AddRow(noteID, "Groceries", "Buy milk", []string{"home"}, createdAt, updatedAt).
			AddRow(otherNoteID, "Ideas", "Write more", []string{"work"}, createdAt, updatedAt)
	}

	t.Run("unfiltered first page", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM notes").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery("SELECT id, title, content, tags, created_at, updated_at FROM notes ORDER BY updated_at DESC, id ASC LIMIT \\$1 OFFSET \\$2").
			WithArgs(10, 0).
			WillReturnRows(noteRows())

		repo := postgres.NewNoteRepository(mock)
		notes, total, err := repo.List(ctx, entities.ListQuery{}.Normalize())

		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, notes, 2)
		assert.Equal(t, "Groceries", notes[0].Title)
		assert.Equal(t, "Ideas", notes[1].Title)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search and tag filters combine with AND", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM notes WHERE \\(title ILIKE \\$1 OR content ILIKE \\$1\\) AND \\$2 = ANY\\(tags\\)").
			WithArgs("%milk%", "home").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT id, title, content, tags, created_at, updated_at FROM notes WHERE \\(title ILIKE \\$1 OR content ILIKE \\$1\\) AND \\$2 = ANY\\(tags\\) ORDER BY updated_at DESC, id ASC LIMIT \\$3 OFFSET \\$4").
			WithArgs("%milk%", "home", 10, 0).
			WillReturnRows(pgxmock.NewRows([]string{"id", "title", "content", "tags", "created_at", "updated_at"}).
				AddRow(noteID, "Groceries", "Buy milk", []string{"home"}, createdAt, updatedAt))

		repo := postgres.NewNoteRepository(mock)
		notes, total, err := repo.List(ctx, entities.ListQuery{Search: "milk", Tag: "home"}.Normalize())

		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, notes, 1)
		assert.Equal(t, noteID, notes[0].ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LIKE metacharacters in search are escaped", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM notes WHERE").
			WithArgs(`%100\% done\_or\\not%`).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT id, title, content, tags, created_at, updated_at FROM notes WHERE").
			WithArgs(`%100\% done\_or\\not%`, 10, 0).
			WillReturnRows(pgxmock.NewRows([]string{"id", "title", "content", "tags", "created_at", "updated_at"}))

		repo := postgres.NewNoteRepository(mock)
		notes, total, err := repo.List(ctx, entities.ListQuery{Search: `100% done_or\not`}.Normalize())

		require.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.Empty(t, notes)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("title ascending sort with offset", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM notes").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))
		mock.ExpectQuery("SELECT id, title, content, tags, created_at, updated_at FROM notes ORDER BY title ASC, id ASC LIMIT \\$1 OFFSET \\$2").
			WithArgs(5, 5).
			WillReturnRows(noteRows())

		repo := postgres.NewNoteRepository(mock)
		notes, total, err := repo.List(ctx, entities.ListQuery{Page: 2, Limit: 5, Sort: entities.SortByTitle, Order: entities.OrderAsc}.Normalize())

		require.NoError(t, err)
		assert.Equal(t, 12, total)
		assert.Len(t, notes, 2)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count query error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM notes").
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewNoteRepository(mock)
		notes, total, err := repo.List(ctx, entities.ListQuery{}.Normalize())

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to count notes")
		assert.Zero(t, total)
		assert.Nil(t, notes)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_ListTags(t *testing.T) {
	ctx := testContext(t)

	t.Run("returns sorted distinct tags", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT DISTINCT unnest\\(tags\\) AS tag FROM notes ORDER BY tag").
			WillReturnRows(pgxmock.NewRows([]string{"tag"}).AddRow("home").AddRow("work"))

		repo := postgres.NewNoteRepository(mock)
		tags, err := repo.ListTags(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"home", "work"}, tags)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no notes yields an empty slice", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT DISTINCT unnest\\(tags\\) AS tag FROM notes ORDER BY tag").
			WillReturnRows(pgxmock.NewRows([]string{"tag"}))

		repo := postgres.NewNoteRepository(mock)
		tags, err := repo.ListTags(ctx)

		require.NoError(t, err)
		assert.Empty(t, tags)
		assert.NotNil(t, tags)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Update(t *testing.T) {
	ctx := testContext(t)

	note := &entities.Note{
		ID:        noteID,
		Title:     "Shopping",
		Content:   "Buy milk and eggs",
		Tags:      []string{"home", "errands"},
		UpdatedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	}

	t.Run("successful update", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE notes SET title = \\$1, content = \\$2, tags = \\$3, updated_at = \\$4 WHERE id = \\$5").
			WithArgs(note.Title, note.Content, note.Tags, note.UpdatedAt, note.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := postgres.NewNoteRepository(mock)
		require.NoError(t, repo.Update(ctx, note))

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing note maps to ErrNoteNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE notes SET").
			WithArgs(note.Title, note.Content, note.Tags, note.UpdatedAt, note.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := postgres.NewNoteRepository(mock)
		err = repo.Update(ctx, note)

		require.Error(t, err)
		assert.ErrorIs(t, err, repositories.ErrNoteNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database connection error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE notes SET").
			WithArgs(note.Title, note.Content, note.Tags, note.UpdatedAt, note.ID).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewNoteRepository(mock)
		err = repo.Update(ctx, note)

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to update note")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	t.Run("successful delete", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM notes WHERE id = \\$1").
			WithArgs(noteID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := postgres.NewNoteRepository(mock)
		require.NoError(t, repo.Delete(ctx, noteID))

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing note maps to ErrNoteNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM notes WHERE id = \\$1").
			WithArgs(noteID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewNoteRepository(mock)
		err = repo.Delete(ctx, noteID)

		require.Error(t, err)
		assert.ErrorIs(t, err, repositories.ErrNoteNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database connection error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM notes WHERE id = \\$1").
			WithArgs(noteID).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewNoteRepository(mock)
		err = repo.Delete(ctx, noteID)

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to delete note")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
