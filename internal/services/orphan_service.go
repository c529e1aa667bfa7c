package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"apexleague/paddock/internal/constants"
	"apexleague/paddock/internal/logging"
	"apexleague/paddock/internal/models/dtos"
	gormModels "apexleague/paddock/internal/models/gorm"

	"gorm.io/gorm"
)

// OrphanService parks session payloads that could not be matched to any
// race, for later admin disposition. Payloads are stored verbatim; no
// orphan is ever silently dropped.
type OrphanService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewOrphanService(db *gorm.DB, notifier Notifier) *OrphanService {
	return &OrphanService{db: db, notifier: notifier}
}

// HandleOrphanedSession persists the payload with status "pending" and
// notifies subscribers that an orphan awaits review.
func (s *OrphanService) HandleOrphanedSession(ctx context.Context, payload dtos.SessionPayload) (*gormModels.OrphanedSession, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize orphaned payload: %w", err)
	}

	orphan := gormModels.OrphanedSession{
		TrackName:       payload.SessionInfo.TrackName,
		SessionType:     payload.SessionInfo.SessionType,
		SessionTypeName: sessionTypeName(payload.SessionInfo),
		Payload:         string(raw),
		Status:          constants.OrphanStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&orphan).Error; err != nil {
		return nil, err
	}
	log.Printf("[OrphanService] Parked orphaned session %s for track %q", orphan.ID, orphan.TrackName)

	evt := dtos.OrphanedSessionEvent{
		OrphanID:    orphan.ID,
		TrackName:   orphan.TrackName,
		SessionType: orphan.SessionType,
		SessionName: orphan.SessionTypeName,
		Timestamp:   orphan.CapturedAt,
	}
	if err := s.notifier.SessionOrphaned(ctx, evt); err != nil {
		logging.Warn("Orphaned session notification failed",
			"orphan_id", orphan.ID,
			"error", err.Error(),
		)
	}
	return &orphan, nil
}

// ProcessOrphanedSession records the race an admin linked the orphan to and
// marks it processed. Linking does not re-run the importer; that follow-up
// is an explicit admin action.
func (s *OrphanService) ProcessOrphanedSession(ctx context.Context, orphanID, raceID string) error {
	orphan, err := s.pendingByID(ctx, orphanID)
	if err != nil {
		return err
	}

	var race gormModels.Race
	if err := s.db.WithContext(ctx).First(&race, "id = ?", raceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "race", ID: raceID}
		}
		return err
	}

	now := time.Now().UTC()
	return s.db.WithContext(ctx).Model(orphan).Updates(map[string]interface{}{
		"status":       constants.OrphanStatusProcessed,
		"race_id":      race.ID,
		"processed_at": now,
	}).Error
}

// IgnoreOrphanedSession marks the orphan as deliberately discarded. The row
// and its payload stay in place.
func (s *OrphanService) IgnoreOrphanedSession(ctx context.Context, orphanID string) error {
	orphan, err := s.pendingByID(ctx, orphanID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return s.db.WithContext(ctx).Model(orphan).Updates(map[string]interface{}{
		"status":       constants.OrphanStatusIgnored,
		"processed_at": now,
	}).Error
}

// ListPending returns orphans awaiting admin review, newest first.
func (s *OrphanService) ListPending(ctx context.Context) ([]gormModels.OrphanedSession, error) {
	var orphans []gormModels.OrphanedSession
	err := s.db.WithContext(ctx).
		Where("status = ?", constants.OrphanStatusPending).
		Order("captured_at DESC").
		Find(&orphans).Error
	return orphans, err
}

func (s *OrphanService) pendingByID(ctx context.Context, orphanID string) (*gormModels.OrphanedSession, error) {
	var orphan gormModels.OrphanedSession
	err := s.db.WithContext(ctx).First(&orphan, "id = ?", orphanID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "orphaned session", ID: orphanID}
		}
		return nil, err
	}
	if orphan.Status != constants.OrphanStatusPending {
		return nil, NewValidationError("orphaned session %s already %s", orphanID, orphan.Status)
	}
	return &orphan, nil
}
