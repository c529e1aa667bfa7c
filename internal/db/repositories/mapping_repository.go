package repositories

import (
	"context"

	gormModels "apexleague/paddock/internal/models/gorm"

	"gorm.io/gorm"
)

// MappingRepository reads and writes season driver mappings. The batch read
// exists so an entire session resolves against one query instead of one
// round trip per driver.
type MappingRepository struct {
	db *gorm.DB
}

func NewMappingRepository(db *gorm.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

// ActiveBySeason returns every active mapping for a season in one query.
func (r *MappingRepository) ActiveBySeason(ctx context.Context, seasonID string) ([]gormModels.DriverMapping, error) {
	var mappings []gormModels.DriverMapping
	err := r.db.WithContext(ctx).
		Where("season_id = ? AND is_active = ?", seasonID, true).
		Find(&mappings).Error
	if err != nil {
		return nil, err
	}
	return mappings, nil
}

// Create inserts a mapping row.
func (r *MappingRepository) Create(ctx context.Context, mapping *gormModels.DriverMapping) error {
	return r.db.WithContext(ctx).Create(mapping).Error
}

// Deactivate closes a mapping's validity window.
func (r *MappingRepository) Deactivate(ctx context.Context, mappingID string) error {
	return r.db.WithContext(ctx).
		Model(&gormModels.DriverMapping{}).
		Where("id = ?", mappingID).
		Updates(map[string]interface{}{"is_active": false, "valid_to": gorm.Expr("CURRENT_TIMESTAMP")}).Error
}

// DeactivateForIdentity closes any active mapping that claims the given
// simulator driver name in the season. Used before inserting a replacement
// so at most one active mapping exists per identity per season.
func (r *MappingRepository) DeactivateForIdentity(ctx context.Context, seasonID, driverName string) error {
	return r.db.WithContext(ctx).
		Model(&gormModels.DriverMapping{}).
		Where("season_id = ? AND driver_name = ? AND is_active = ?", seasonID, driverName, true).
		Updates(map[string]interface{}{"is_active": false, "valid_to": gorm.Expr("CURRENT_TIMESTAMP")}).Error
}
