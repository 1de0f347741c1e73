package guestbook

import (
	"context"

	"gorm.io/gorm"

	guestbookdomain "wedding-registry-go/internal/domain/guestbook"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListEntries(ctx context.Context) ([]guestbookdomain.Entry, error) {
	var entries []guestbookdomain.Entry
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PostgresRepository) CreateEntry(ctx context.Context, entry *guestbookdomain.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *PostgresRepository) DeleteEntry(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&guestbookdomain.Entry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return guestbookdomain.ErrEntryNotFound
	}
	return nil
}
