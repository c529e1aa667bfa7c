package services

import (
	"context"
	"errors"
	"strings"

	gormModels "apexleague/paddock/internal/models/gorm"

	"gorm.io/gorm"
)

// SeasonService is the thin admin surface for seasons: the engine's
// season-scoped operations need somewhere to point.
type SeasonService struct {
	db *gorm.DB
}

func NewSeasonService(db *gorm.DB) *SeasonService {
	return &SeasonService{db: db}
}

// CreateSeason creates an inactive season.
func (s *SeasonService) CreateSeason(ctx context.Context, name string, year int) (*gormModels.Season, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("season name is mandatory")
	}
	if year < 2000 {
		return nil, NewValidationError("season year %d is not plausible", year)
	}
	season := gormModels.Season{Name: name, Year: year}
	if err := s.db.WithContext(ctx).Create(&season).Error; err != nil {
		return nil, err
	}
	return &season, nil
}

// ActivateSeason makes one season active, deactivating any other. At most
// one season is active at a time.
func (s *SeasonService) ActivateSeason(ctx context.Context, seasonID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var season gormModels.Season
		err := tx.First(&season, "id = ?", seasonID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "season", ID: seasonID}
			}
			return err
		}

		if err := tx.Model(&gormModels.Season{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&season).Update("is_active", true).Error
	})
}

// ListSeasons returns all seasons, newest year first.
func (s *SeasonService) ListSeasons(ctx context.Context) ([]gormModels.Season, error) {
	var seasons []gormModels.Season
	err := s.db.WithContext(ctx).Order("year DESC").Find(&seasons).Error
	return seasons, err
}

// SessionResults returns the current driver rows of a session with their
// penalties, ordered by position.
func (s *SeasonService) SessionResults(ctx context.Context, sessionResultID string) ([]gormModels.DriverSessionResult, error) {
	var session gormModels.SessionResult
	err := s.db.WithContext(ctx).First(&session, "id = ?", sessionResultID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "session result", ID: sessionResultID}
		}
		return nil, err
	}

	var rows []gormModels.DriverSessionResult
	err = s.db.WithContext(ctx).
		Preload("Penalties").
		Where("session_result_id = ?", sessionResultID).
		Order("position ASC").
		Find(&rows).Error
	return rows, err
}
