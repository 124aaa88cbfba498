package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostel-cms/complaint-service/internal/domain"
)

const complaintColumns = `id, title, description, category, priority, status, student_id, student_name,
               room_number, hostel, roll_number, warden_comment, resolved_at, created_at, updated_at`

type pgComplaintRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresComplaintRepository returns a Postgres-backed ComplaintRepository.
func NewPostgresComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &pgComplaintRepository{pool: pool}
}

func (r *pgComplaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	query := `INSERT INTO complaints (` + complaintColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`
	_, err := r.pool.Exec(ctx, query,
		complaint.ID,
		complaint.Title,
		complaint.Description,
		complaint.Category,
		complaint.Priority,
		complaint.Status,
		complaint.StudentID,
		complaint.StudentName,
		complaint.RoomNumber,
		complaint.Hostel,
		complaint.RollNumber,
		complaint.WardenComment,
		complaint.ResolvedAt,
		complaint.CreatedAt,
		complaint.UpdatedAt,
	)
	return err
}

func (r *pgComplaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id=$1`
	complaint, err := scanComplaint(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return complaint, err
}

func (r *pgComplaintRepository) List(ctx context.Context, filter domain.ComplaintFilter) ([]domain.Complaint, error) {
	query, args := complaintListQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
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

// complaintListQuery builds the filtered listing. Rows sharing created_at
// keep insertion order.
func complaintListQuery(filter domain.ComplaintFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		clauses = append(clauses, fmt.Sprintf("student_id=$%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(title ILIKE %[1]s OR description ILIKE %[1]s OR student_name ILIKE %[1]s)", placeholder))
	}

	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE %s ORDER BY created_at DESC, seq ASC`,
		complaintColumns, strings.Join(clauses, " AND "))
	return query, args
}

// Update locks the row with SELECT ... FOR UPDATE so the mutator sees the
// state it overwrites.
func (r *pgComplaintRepository) Update(ctx context.Context, id string, mutate ComplaintMutator) (*domain.Complaint, error) {
	var updated *domain.Complaint
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		current, err := lockComplaint(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := mutate(current); err != nil {
			return err
		}

		const query = `
            UPDATE complaints SET title=$1, description=$2, category=$3, priority=$4, status=$5,
                warden_comment=$6, resolved_at=$7, updated_at=$8
            WHERE id=$9`
		if _, err := tx.Exec(ctx, query,
			current.Title,
			current.Description,
			current.Category,
			current.Priority,
			current.Status,
			current.WardenComment,
			current.ResolvedAt,
			current.UpdatedAt,
			id,
		); err != nil {
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

func (r *pgComplaintRepository) Delete(ctx context.Context, id string, guard ComplaintGuard) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		current, err := lockComplaint(ctx, tx, id)
		if err != nil {
			return err
		}
		if guard != nil {
			if err := guard(current); err != nil {
				return err
			}
		}
		_, err = tx.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
		return err
	})
}

func lockComplaint(ctx context.Context, tx pgx.Tx, id string) (*domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id=$1 FOR UPDATE`
	complaint, err := scanComplaint(tx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return complaint, err
}

func scanComplaint(row pgx.Row) (*domain.Complaint, error) {
	var complaint domain.Complaint
	if err := row.Scan(
		&complaint.ID,
		&complaint.Title,
		&complaint.Description,
		&complaint.Category,
		&complaint.Priority,
		&complaint.Status,
		&complaint.StudentID,
		&complaint.StudentName,
		&complaint.RoomNumber,
		&complaint.Hostel,
		&complaint.RollNumber,
		&complaint.WardenComment,
		&complaint.ResolvedAt,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
