package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/hostel-cms/complaint-service/internal/domain"
	"github.com/hostel-cms/complaint-service/internal/repository"
)

const complaintColumns = `id, title, description, category, priority, status, student_id, student_name,
    room_number, hostel, roll_number, warden_comment, resolved_at, created_at, updated_at`

type complaintRepository struct {
	db *sql.DB
}

// NewComplaintRepository returns a SQLite-backed ComplaintRepository.
func NewComplaintRepository(db *sql.DB) repository.ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) Create(ctx context.Context, c *domain.Complaint) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO complaints (`+complaintColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Title,
		c.Description,
		string(c.Category),
		string(c.Priority),
		string(c.Status),
		c.StudentID,
		c.StudentName,
		c.RoomNumber,
		c.Hostel,
		c.RollNumber,
		nullableComment(c.WardenComment),
		nullableTime(c.ResolvedAt),
		toNanos(c.CreatedAt),
		toNanos(c.UpdatedAt),
	)
	return err
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	return getComplaint(ctx, r.db, id)
}

func (r *complaintRepository) List(ctx context.Context, filter domain.ComplaintFilter) ([]domain.Complaint, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.StudentID != "" {
		clauses = append(clauses, "student_id = ?")
		args = append(args, filter.StudentID)
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, string(filter.Category))
	}
	if filter.Priority != "" {
		clauses = append(clauses, "priority = ?")
		args = append(args, string(filter.Priority))
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		clauses = append(clauses,
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(student_name) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE ` +
		strings.Join(clauses, " AND ") + ` ORDER BY created_at DESC, rowid ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	complaints := make([]domain.Complaint, 0)
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, *complaint)
	}
	return complaints, rows.Err()
}

func (r *complaintRepository) Update(ctx context.Context, id string, mutate repository.ComplaintMutator) (*domain.Complaint, error) {
	var updated *domain.Complaint
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		current, err := getComplaint(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := mutate(current); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
            UPDATE complaints SET title = ?, description = ?, category = ?, priority = ?, status = ?,
                warden_comment = ?, resolved_at = ?, updated_at = ?
            WHERE id = ?`,
			current.Title,
			current.Description,
			string(current.Category),
			string(current.Priority),
			string(current.Status),
			nullableComment(current.WardenComment),
			nullableTime(current.ResolvedAt),
			toNanos(current.UpdatedAt),
			id,
		)
		if err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *complaintRepository) Delete(ctx context.Context, id string, guard repository.ComplaintGuard) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		current, err := getComplaint(ctx, tx, id)
		if err != nil {
			return err
		}
		if guard != nil {
			if err := guard(current); err != nil {
				return err
			}
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM complaints WHERE id = ?`, id)
		return err
	})
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getComplaint(ctx context.Context, q queryRower, id string) (*domain.Complaint, error) {
	complaint, err := scanComplaint(q.QueryRowContext(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return complaint, err
}

func scanComplaint(row rowScanner) (*domain.Complaint, error) {
	var (
		c                          domain.Complaint
		category, priority, status string
		comment                    sql.NullString
		resolvedAt                 sql.NullInt64
		createdAt, updatedAt       int64
	)
	if err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&category,
		&priority,
		&status,
		&c.StudentID,
		&c.StudentName,
		&c.RoomNumber,
		&c.Hostel,
		&c.RollNumber,
		&comment,
		&resolvedAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	c.Category = domain.ComplaintCategory(category)
	c.Priority = domain.ComplaintPriority(priority)
	c.Status = domain.ComplaintStatus(status)
	if comment.Valid {
		text := comment.String
		c.WardenComment = &text
	}
	if resolvedAt.Valid {
		resolved := fromNanos(resolvedAt.Int64)
		c.ResolvedAt = &resolved
	}
	c.CreatedAt = fromNanos(createdAt)
	c.UpdatedAt = fromNanos(updatedAt)
	return &c, nil
}

func nullableComment(comment *string) sql.NullString {
	if comment == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *comment, Valid: true}
}

func nullableTime(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toNanos(*t), Valid: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
