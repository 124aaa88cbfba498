package sqlite

import (
	"context"
	"database/sql"

	"github.com/hostel-cms/complaint-service/internal/domain"
	"github.com/hostel-cms/complaint-service/internal/repository"
)

type announcementRepository struct {
	db *sql.DB
}

// NewAnnouncementRepository returns a SQLite-backed AnnouncementRepository.
func NewAnnouncementRepository(db *sql.DB) repository.AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO announcements (id, title, message, hostel, created_by, created_by_name, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Message, a.Hostel, a.CreatedBy, a.CreatedByName, toNanos(a.CreatedAt),
	)
	return err
}

func (r *announcementRepository) List(ctx context.Context) ([]domain.Announcement, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, title, message, hostel, created_by, created_by_name, created_at
        FROM announcements ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	announcements := make([]domain.Announcement, 0)
	for rows.Next() {
		var (
			a         domain.Announcement
			createdAt int64
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Message, &a.Hostel, &a.CreatedBy, &a.CreatedByName, &createdAt); err != nil {
			return nil, err
		}
		a.CreatedAt = fromNanos(createdAt)
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}
