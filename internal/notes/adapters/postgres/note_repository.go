package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mdnotes/internal/notes/domain/entities"
	"mdnotes/internal/notes/ports/repositories"
	"mdnotes/pkg/logger"
)

// NoteRepository implements repositories.NoteRepository on top of Postgres.
type NoteRepository struct {
	db DB
}

const noteColumns = "id, title, content, tags, created_at, updated_at"

// Column mapping for the whitelisted sort fields. The id tie-break keeps the
// order stable when the sort key collides.
var sortColumns = map[string]string{
	entities.SortByUpdatedAt: "updated_at",
	entities.SortByCreatedAt: "created_at",
	entities.SortByTitle:     "title",
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(db DB) repositories.NoteRepository {
	return &NoteRepository{db: db}
}

// Create persists a new note and returns the storage-assigned id.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("title", note.Title))

	var noteID string
	err := r.db.QueryRow(ctx,
		`INSERT INTO notes (title, content, tags, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		note.Title, note.Content, note.Tags, note.CreatedAt, note.UpdatedAt,
	).Scan(&noteID)

	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return "", fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", noteID))
	return noteID, nil
}

// GetByID fetches a note by id, returning (nil, nil) when it does not exist.
func (r *NoteRepository) GetByID(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID))

	var note entities.Note
	err := r.db.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = $1`,
		noteID,
	).Scan(&note.ID, &note.Title, &note.Content, &note.Tags, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, nil
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

// List returns one page of notes matching the query plus the total number of
// matches. The query must already be normalized.
func (r *NoteRepository) List(ctx context.Context, query entities.ListQuery) ([]*entities.Note, int, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))
	log.Debug(ctx, "listing notes",
		zap.String("search", query.Search),
		zap.String("tag", query.Tag),
		zap.Int("page", query.Page),
		zap.Int("limit", query.Limit))

	where, args := buildFilter(query)

	var totalCount int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notes`+where, args...).Scan(&totalCount)
	if err != nil {
		log.Error(ctx, "failed to count notes", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count notes: %w", err)
	}

	orderBy := buildOrderBy(query)
	pageArgs := append(args, query.Limit, query.Offset())
	sql := fmt.Sprintf(`SELECT %s FROM notes%s %s LIMIT $%d OFFSET $%d`,
		noteColumns, where, orderBy, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, sql, pageArgs...)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.Tags, &note.CreatedAt, &note.UpdatedAt)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, 0, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, totalCount, nil
}

// ListTags returns the deduplicated, sorted union of tags across all notes.
func (r *NoteRepository) ListTags(ctx context.Context) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListTags"))
	log.Debug(ctx, "listing tags")

	rows, err := r.db.Query(ctx, `SELECT DISTINCT unnest(tags) AS tag FROM notes ORDER BY tag`)
	if err != nil {
		log.Error(ctx, "failed to list tags", zap.Error(err))
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]string, 0)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			log.Error(ctx, "failed to scan tag", zap.Error(err))
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tags, nil
}

// Update replaces title, content, tags and updated_at of an existing note.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	result, err := r.db.Exec(ctx,
		`UPDATE notes SET title = $1, content = $2, tags = $3, updated_at = $4 WHERE id = $5`,
		note.Title, note.Content, note.Tags, note.UpdatedAt, note.ID,
	)
	if err != nil {
		log.Error(ctx, "failed to update note", zap.Error(err))
		return fmt.Errorf("failed to update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found", zap.String("noteID", note.ID))
		return repositories.ErrNoteNotFound
	}

	return nil
}

// Delete permanently removes a note.
func (r *NoteRepository) Delete(ctx context.Context, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	result, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, noteID)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found", zap.String("noteID", noteID))
		return repositories.ErrNoteNotFound
	}

	return nil
}

// buildFilter renders the WHERE clause for a list query. Search matches a
// case-insensitive substring of title or content; tag is an exact,
// case-sensitive membership test. Both combine with AND.
func buildFilter(query entities.ListQuery) (string, []any) {
	conditions := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if query.Search != "" {
		args = append(args, "%"+escapeLikePattern(query.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", n, n))
	}
	if query.Tag != "" {
		args = append(args, query.Tag)
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// buildOrderBy renders the ORDER BY clause from the whitelisted sort field.
func buildOrderBy(query entities.ListQuery) string {
	column, ok := sortColumns[query.Sort]
	if !ok {
		column = "updated_at"
	}
	direction := "DESC"
	if query.Order == entities.OrderAsc {
		direction = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", column, direction)
}

// escapeLikePattern escapes the LIKE metacharacters so user input is always
// treated as a literal substring.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
