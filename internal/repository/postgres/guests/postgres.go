package guests

import (
	"context"
	"errors"

	"gorm.io/gorm"

	guestsdomain "wedding-registry-go/internal/domain/guests"
)

const insertBatchSize = 100

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(guestsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) LoadDirectory(ctx context.Context) ([]guestsdomain.Guest, error) {
	var directory []guestsdomain.Guest
	if err := r.db.WithContext(ctx).Order("position asc").Order("id asc").Find(&directory).Error; err != nil {
		return nil, err
	}
	return directory, nil
}

func (r *PostgresRepository) GetGuest(ctx context.Context, id string) (*guestsdomain.Guest, error) {
	var guest guestsdomain.Guest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&guest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, guestsdomain.ErrGuestNotFound
		}
		return nil, err
	}
	return &guest, nil
}

func (r *PostgresRepository) ApplyMutations(ctx context.Context, rows []guestsdomain.Guest) error {
	for _, row := range rows {
		var response any
		if row.RSVPResponse != nil {
			response = string(*row.RSVPResponse)
		}
		result := r.db.WithContext(ctx).
			Model(&guestsdomain.Guest{}).
			Where("id = ?", row.ID).
			Updates(map[string]any{
				"has_rsvped":       row.HasRSVPed,
				"rsvp_response":    response,
				"rsvp_guest_count": row.RSVPGuestCount,
				"rsvp_dietary":     row.RSVPDietary,
				"rsvp_message":     row.RSVPMessage,
				"rsvp_date":        row.RSVPDate,
				"rsvp_by":          row.RSVPBy,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return guestsdomain.ErrGuestNotFound
		}
	}
	return nil
}

// ReplaceDirectory deletes every guest row before inserting rows; call it
// inside Transaction so readers never see an empty list.
func (r *PostgresRepository) ReplaceDirectory(ctx context.Context, rows []guestsdomain.Guest) error {
	db := r.db.WithContext(ctx)
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&guestsdomain.Guest{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return db.CreateInBatches(rows, insertBatchSize).Error
}
