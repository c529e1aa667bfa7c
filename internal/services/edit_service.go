package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"apexleague/paddock/internal/constants"
	gormModels "apexleague/paddock/internal/models/gorm"

	"gorm.io/gorm"
)

// EditService is the edit ledger: it validates and applies manual
// corrections to session results, recording every change as an immutable
// RaceEditHistory entry. History rows are never mutated; a revert is a new
// forward entry whose new value equals the reverted entry's old value.
type EditService struct {
	db       *gorm.DB
	resolver *IdentityResolver
}

func NewEditService(db *gorm.DB, resolver *IdentityResolver) *EditService {
	return &EditService{db: db, resolver: resolver}
}

// Structured old/new values stored on history rows, keyed by edit type.

type penaltyValue struct {
	PenaltyID string `json:"penalty_id"`
	Seconds   int    `json:"seconds"`
	Reason    string `json:"reason"`
}

type positionValue struct {
	Position int `json:"position"`
}

type dsqValue struct {
	Status    string  `json:"status"`
	Position  int     `json:"position"`
	DNFReason *string `json:"dnf_reason,omitempty"`
}

type mappingValue struct {
	MemberID *string `json:"member_id"`
}

// AddPenalty appends a stacking time penalty to a driver result. Penalties
// do not themselves change position or points; ordering is derived at
// display time.
func (s *EditService) AddPenalty(ctx context.Context, driverResultID string, seconds int, reason, editor string) (*gormModels.Penalty, error) {
	if seconds <= 0 {
		return nil, NewValidationError("penalty seconds must be positive, got %d", seconds)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, NewValidationError("penalty reason is mandatory")
	}

	var penalty gormModels.Penalty
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := loadDriverResult(tx, driverResultID)
		if err != nil {
			return err
		}

		penalty = gormModels.Penalty{
			DriverSessionResultID: row.ID,
			Seconds:               seconds,
			Reason:                reason,
			Editor:                editor,
		}
		if err := tx.Create(&penalty).Error; err != nil {
			return err
		}

		return s.appendHistory(tx, historyEntry{
			SessionResultID: row.SessionResultID,
			DriverResultID:  &row.ID,
			MemberID:        row.MemberID,
			EditType:        constants.EditTypePenalty,
			OldValue:        "",
			NewValue:        mustJSON(penaltyValue{PenaltyID: penalty.ID, Seconds: seconds, Reason: reason}),
			Reason:          reason,
			Editor:          editor,
		})
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[EditService] %s added %ds penalty to result %s", editor, seconds, driverResultID)
	return &penalty, nil
}

// RemovePenalty deletes a penalty from a driver result.
func (s *EditService) RemovePenalty(ctx context.Context, driverResultID, penaltyID, editor string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := loadDriverResult(tx, driverResultID)
		if err != nil {
			return err
		}

		var penalty gormModels.Penalty
		err = tx.Where("id = ? AND driver_session_result_id = ?", penaltyID, row.ID).First(&penalty).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "penalty", ID: penaltyID}
			}
			return err
		}
		if err := tx.Delete(&penalty).Error; err != nil {
			return err
		}

		return s.appendHistory(tx, historyEntry{
			SessionResultID: row.SessionResultID,
			DriverResultID:  &row.ID,
			MemberID:        row.MemberID,
			EditType:        constants.EditTypePenalty,
			OldValue:        mustJSON(penaltyValue{PenaltyID: penalty.ID, Seconds: penalty.Seconds, Reason: penalty.Reason}),
			NewValue:        "",
			Reason:          "penalty removed",
			Editor:          editor,
		})
	})
}

// ChangePosition moves a driver to a new classified position.
func (s *EditService) ChangePosition(ctx context.Context, sessionResultID, driverResultID string, newPosition int, reason, editor string) error {
	if newPosition < 1 {
		return NewValidationError("position must be >= 1, got %d", newPosition)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := loadSessionDriverResult(tx, sessionResultID, driverResultID)
		if err != nil {
			return err
		}

		if err := s.checkPositionFree(tx, row, newPosition); err != nil {
			return err
		}

		oldPosition := row.Position
		if err := tx.Model(row).Update("position", newPosition).Error; err != nil {
			return err
		}

		return s.appendHistory(tx, historyEntry{
			SessionResultID: row.SessionResultID,
			DriverResultID:  &row.ID,
			MemberID:        row.MemberID,
			EditType:        constants.EditTypePositionChange,
			OldValue:        mustJSON(positionValue{Position: oldPosition}),
			NewValue:        mustJSON(positionValue{Position: newPosition}),
			Reason:          reason,
			Editor:          editor,
		})
	})
}

// DisqualifyDriver sets a driver's result status to disqualified. The
// reason is mandatory; it becomes the dnf reason on the row.
func (s *EditService) DisqualifyDriver(ctx context.Context, sessionResultID, driverResultID, reason, editor string) error {
	if strings.TrimSpace(reason) == "" {
		return NewValidationError("disqualification reason is mandatory")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := loadSessionDriverResult(tx, sessionResultID, driverResultID)
		if err != nil {
			return err
		}

		old := dsqValue{Status: row.ResultStatus, Position: row.Position, DNFReason: row.DNFReason}
		updates := map[string]interface{}{
			"result_status": constants.ResultStatusDisqualified,
			"dnf_reason":    reason,
		}
		if err := tx.Model(row).Updates(updates).Error; err != nil {
			return err
		}

		return s.appendHistory(tx, historyEntry{
			SessionResultID: row.SessionResultID,
			DriverResultID:  &row.ID,
			MemberID:        row.MemberID,
			EditType:        constants.EditTypeDisqualification,
			OldValue:        mustJSON(old),
			NewValue:        mustJSON(dsqValue{Status: constants.ResultStatusDisqualified, Position: row.Position, DNFReason: &reason}),
			Reason:          reason,
			Editor:          editor,
		})
	})
}

// UpdateDriverUserMapping reassigns which member a driver entry resolves
// to, or clears the resolution when newMemberID is nil. Two entries in one
// session can never claim the same member: the conflict is rejected with
// the other entry's id. A successful assignment also records a season
// mapping so future imports resolve the identity directly.
func (s *EditService) UpdateDriverUserMapping(ctx context.Context, sessionResultID, driverResultID string, newMemberID *string, reason, editor string) error {
	var seasonID string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := loadSessionDriverResult(tx, sessionResultID, driverResultID)
		if err != nil {
			return err
		}

		if newMemberID != nil {
			var other gormModels.DriverSessionResult
			err := tx.Where("session_result_id = ? AND member_id = ? AND id <> ?", sessionResultID, *newMemberID, row.ID).
				First(&other).Error
			if err == nil {
				return &ConflictError{
					Msg:        fmt.Sprintf("member %s is already mapped to driver entry %s in this session", *newMemberID, other.ID),
					ConflictID: other.ID,
				}
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		oldMemberID := row.MemberID
		if err := tx.Model(row).Update("member_id", newMemberID).Error; err != nil {
			return err
		}

		if newMemberID != nil && row.DriverName != "" {
			if err := s.learnMapping(tx, row, *newMemberID, &seasonID); err != nil {
				return err
			}
		}

		return s.appendHistory(tx, historyEntry{
			SessionResultID: row.SessionResultID,
			DriverResultID:  &row.ID,
			MemberID:        newMemberID,
			EditType:        constants.EditTypeUserMapping,
			OldValue:        mustJSON(mappingValue{MemberID: oldMemberID}),
			NewValue:        mustJSON(mappingValue{MemberID: newMemberID}),
			Reason:          reason,
			Editor:          editor,
		})
	})
	if err != nil {
		return err
	}
	if seasonID != "" {
		s.resolver.InvalidateSeason(seasonID)
	}
	return nil
}

// learnMapping persists the confirmed identity as the season's active
// mapping, retiring any previous mapping for the same driver name.
func (s *EditService) learnMapping(tx *gorm.DB, row *gormModels.DriverSessionResult, memberID string, seasonID *string) error {
	var race gormModels.Race
	err := tx.
		Joins("JOIN session_results ON session_results.race_id = races.id").
		Where("session_results.id = ?", row.SessionResultID).
		First(&race).Error
	if err != nil {
		return err
	}
	*seasonID = race.SeasonID

	err = tx.Model(&gormModels.DriverMapping{}).
		Where("season_id = ? AND driver_name = ? AND is_active = ?", race.SeasonID, row.DriverName, true).
		Updates(map[string]interface{}{"is_active": false, "valid_to": gorm.Expr("CURRENT_TIMESTAMP")}).Error
	if err != nil {
		return err
	}

	carNumber := row.CarNumber
	var teamName *string
	if row.TeamName != "" {
		teamName = &row.TeamName
	}
	mapping := gormModels.DriverMapping{
		SeasonID:   race.SeasonID,
		MemberID:   memberID,
		DriverName: row.DriverName,
		CarNumber:  &carNumber,
		TeamName:   teamName,
		NetworkID:  row.NetworkID,
		SteamID:    row.SteamID,
		IsActive:   true,
	}
	return tx.Create(&mapping).Error
}

// RevertEdit reverses a prior edit by applying its old value back to the
// current rows and appending a new history entry. The original entry is
// left untouched.
func (s *EditService) RevertEdit(ctx context.Context, historyID, editor string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry gormModels.RaceEditHistory
		err := tx.First(&entry, "id = ?", historyID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "edit history entry", ID: historyID}
			}
			return err
		}

		if err := s.applyInverse(tx, &entry); err != nil {
			return err
		}

		return s.appendHistory(tx, historyEntry{
			SessionResultID: entry.SessionResultID,
			DriverResultID:  entry.DriverResultID,
			MemberID:        entry.MemberID,
			EditType:        entry.EditType,
			OldValue:        entry.NewValue,
			NewValue:        entry.OldValue,
			Reason:          fmt.Sprintf("revert of edit %s", entry.ID),
			Editor:          editor,
			RevertOf:        &entry.ID,
		})
	})
}

func (s *EditService) applyInverse(tx *gorm.DB, entry *gormModels.RaceEditHistory) error {
	if entry.DriverResultID == nil {
		return NewValidationError("edit %s has no driver entry to revert", entry.ID)
	}
	row, err := loadDriverResult(tx, *entry.DriverResultID)
	if err != nil {
		return err
	}

	switch entry.EditType {
	case constants.EditTypePenalty:
		if entry.OldValue == "" {
			// Reverting a penalty addition removes the penalty.
			var val penaltyValue
			if err := json.Unmarshal([]byte(entry.NewValue), &val); err != nil {
				return fmt.Errorf("corrupt history value on %s: %w", entry.ID, err)
			}
			res := tx.Where("id = ?", val.PenaltyID).Delete(&gormModels.Penalty{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &NotFoundError{Resource: "penalty", ID: val.PenaltyID}
			}
			return nil
		}
		// Reverting a penalty removal restores the penalty under its old id.
		var val penaltyValue
		if err := json.Unmarshal([]byte(entry.OldValue), &val); err != nil {
			return fmt.Errorf("corrupt history value on %s: %w", entry.ID, err)
		}
		restored := gormModels.Penalty{
			ID:                    val.PenaltyID,
			DriverSessionResultID: row.ID,
			Seconds:               val.Seconds,
			Reason:                val.Reason,
			Editor:                entry.Editor,
		}
		return tx.Create(&restored).Error

	case constants.EditTypePositionChange:
		var val positionValue
		if err := json.Unmarshal([]byte(entry.OldValue), &val); err != nil {
			return fmt.Errorf("corrupt history value on %s: %w", entry.ID, err)
		}
		if err := s.checkPositionFree(tx, row, val.Position); err != nil {
			return err
		}
		return tx.Model(row).Update("position", val.Position).Error

	case constants.EditTypeDisqualification:
		var val dsqValue
		if err := json.Unmarshal([]byte(entry.OldValue), &val); err != nil {
			return fmt.Errorf("corrupt history value on %s: %w", entry.ID, err)
		}
		return tx.Model(row).Updates(map[string]interface{}{
			"result_status": val.Status,
			"position":      val.Position,
			"dnf_reason":    val.DNFReason,
		}).Error

	case constants.EditTypeUserMapping:
		var val mappingValue
		if err := json.Unmarshal([]byte(entry.OldValue), &val); err != nil {
			return fmt.Errorf("corrupt history value on %s: %w", entry.ID, err)
		}
		if val.MemberID != nil {
			var other gormModels.DriverSessionResult
			err := tx.Where("session_result_id = ? AND member_id = ? AND id <> ?", entry.SessionResultID, *val.MemberID, row.ID).
				First(&other).Error
			if err == nil {
				return &ConflictError{
					Msg:        fmt.Sprintf("member %s is already mapped to driver entry %s in this session", *val.MemberID, other.ID),
					ConflictID: other.ID,
				}
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		return tx.Model(row).Update("member_id", val.MemberID).Error

	default:
		return NewValidationError("unknown edit type %q on %s", entry.EditType, entry.ID)
	}
}

// ValidateEdit is the pre-check exposed to callers: it verifies the edit
// targets exist before any write is attempted.
func (s *EditService) ValidateEdit(ctx context.Context, sessionResultID, driverResultID string) error {
	_, err := loadSessionDriverResult(s.db.WithContext(ctx), sessionResultID, driverResultID)
	return err
}

// GetSessionHistory lists a session's edit trail, most recent first.
func (s *EditService) GetSessionHistory(ctx context.Context, sessionResultID string) ([]gormModels.RaceEditHistory, error) {
	var entries []gormModels.RaceEditHistory
	err := s.db.WithContext(ctx).
		Where("session_result_id = ?", sessionResultID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// GetRaceHistory lists the edit trail across every session of a race,
// most recent first.
func (s *EditService) GetRaceHistory(ctx context.Context, raceID string) ([]gormModels.RaceEditHistory, error) {
	sub := s.db.Model(&gormModels.SessionResult{}).Select("id").Where("race_id = ?", raceID)

	var entries []gormModels.RaceEditHistory
	err := s.db.WithContext(ctx).
		Where("session_result_id IN (?)", sub).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

type historyEntry struct {
	SessionResultID string
	DriverResultID  *string
	MemberID        *string
	EditType        string
	OldValue        string
	NewValue        string
	Reason          string
	Editor          string
	RevertOf        *string
}

func (s *EditService) appendHistory(tx *gorm.DB, e historyEntry) error {
	row := gormModels.RaceEditHistory{
		SessionResultID: e.SessionResultID,
		DriverResultID:  e.DriverResultID,
		MemberID:        e.MemberID,
		EditType:        e.EditType,
		OldValue:        e.OldValue,
		NewValue:        e.NewValue,
		Reason:          e.Reason,
		Editor:          e.Editor,
		RevertOf:        e.RevertOf,
	}
	return tx.Create(&row).Error
}

// checkPositionFree enforces position uniqueness among classified entries:
// moving a non-disqualified driver onto a position another non-disqualified
// driver holds is rejected with the occupying entry's id. Disqualified rows
// keep their position but do not block it.
func (s *EditService) checkPositionFree(tx *gorm.DB, row *gormModels.DriverSessionResult, position int) error {
	if row.ResultStatus == constants.ResultStatusDisqualified {
		return nil
	}

	var other gormModels.DriverSessionResult
	err := tx.Where(
		"session_result_id = ? AND position = ? AND id <> ? AND result_status <> ?",
		row.SessionResultID, position, row.ID, constants.ResultStatusDisqualified,
	).First(&other).Error
	if err == nil {
		return &ConflictError{
			Msg:        fmt.Sprintf("position %d is already held by driver entry %s", position, other.ID),
			ConflictID: other.ID,
		}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func loadDriverResult(tx *gorm.DB, driverResultID string) (*gormModels.DriverSessionResult, error) {
	var row gormModels.DriverSessionResult
	err := tx.First(&row, "id = ?", driverResultID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "driver result", ID: driverResultID}
		}
		return nil, err
	}
	return &row, nil
}

func loadSessionDriverResult(tx *gorm.DB, sessionResultID, driverResultID string) (*gormModels.DriverSessionResult, error) {
	var session gormModels.SessionResult
	err := tx.First(&session, "id = ?", sessionResultID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "session result", ID: sessionResultID}
		}
		return nil, err
	}

	var row gormModels.DriverSessionResult
	err = tx.Where("id = ? AND session_result_id = ?", driverResultID, sessionResultID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "driver result", ID: driverResultID}
		}
		return nil, err
	}
	return &row, nil
}

func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
