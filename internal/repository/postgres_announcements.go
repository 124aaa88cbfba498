package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostel-cms/complaint-service/internal/domain"
)

type pgAnnouncementRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAnnouncementRepository returns a Postgres-backed AnnouncementRepository.
func NewPostgresAnnouncementRepository(pool *pgxpool.Pool) AnnouncementRepository {
	return &pgAnnouncementRepository{pool: pool}
}

func (r *pgAnnouncementRepository) Create(ctx context.Context, announcement *domain.Announcement) error {
	const query = `
        INSERT INTO announcements (id, title, message, hostel, created_by, created_by_name, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		announcement.ID,
		announcement.Title,
		announcement.Message,
		announcement.Hostel,
		announcement.CreatedBy,
		announcement.CreatedByName,
		announcement.CreatedAt,
	)
	return err
}

// Latest insert first among equal timestamps.
const listAnnouncementsQuery = `
        SELECT id, title, message, hostel, created_by, created_by_name, created_at
        FROM announcements ORDER BY created_at DESC, seq DESC`

func (r *pgAnnouncementRepository) List(ctx context.Context) ([]domain.Announcement, error) {
	rows, err := r.pool.Query(ctx, listAnnouncementsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	announcements := make([]domain.Announcement, 0)
	for rows.Next() {
		var a domain.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Message, &a.Hostel, &a.CreatedBy, &a.CreatedByName, &a.CreatedAt); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

// NewPostgresStore bundles the Postgres repositories over one pool. Closing
// the store does not close the pool; its owner does.
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return NewStore(
		NewPostgresUserRepository(pool),
		NewPostgresComplaintRepository(pool),
		NewPostgresAnnouncementRepository(pool),
		nil,
	)
}
