package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"apexleague/paddock/internal/constants"
	gormModels "apexleague/paddock/internal/models/gorm"

	"gorm.io/gorm"
)

// EventResolver finds or creates the race a session belongs to. The
// simulator and the league's track catalog disagree on canonical circuit
// names, so lookups fall back to a fixed alias table before creating
// anything.
type EventResolver struct{}

func NewEventResolver() *EventResolver {
	return &EventResolver{}
}

// ResolveRace finds the race for a free-text track name. Lookup order:
// exact case-normalized name, then each known alias. When nothing matches
// and a season id is available, the track (if unknown) and a new race are
// created with status "completed". Without a season id resolution fails and
// the caller routes the payload to the orphan handler.
//
// Runs against the transaction handle the importer supplies, so a created
// track/race rolls back with the rest of a failed import.
func (r *EventResolver) ResolveRace(tx *gorm.DB, trackName string, seasonID *string) (*gormModels.Race, error) {
	// TrackAliases already includes the (normalized) name itself.
	for _, name := range constants.TrackAliases(trackName) {
		race, err := r.lookupRaceByTrackName(tx, name, seasonID)
		if err != nil {
			return nil, err
		}
		if race != nil {
			return race, nil
		}
	}

	if seasonID == nil {
		return nil, ErrResolutionFailed
	}

	track, err := r.findOrCreateTrack(tx, trackName)
	if err != nil {
		return nil, fmt.Errorf("failed to create track %q: %w", trackName, err)
	}

	race := &gormModels.Race{
		SeasonID: *seasonID,
		TrackID:  track.ID,
		RaceDate: time.Now().UTC(),
		Status:   constants.RaceStatusCompleted,
	}
	if err := tx.Create(race).Error; err != nil {
		return nil, fmt.Errorf("failed to create race: %w", err)
	}
	log.Printf("[EventResolver] Created race %s at track %q for season %s", race.ID, track.Name, *seasonID)
	return race, nil
}

func (r *EventResolver) lookupRaceByTrackName(tx *gorm.DB, normName string, seasonID *string) (*gormModels.Race, error) {
	query := tx.
		Joins("JOIN tracks ON tracks.id = races.track_id").
		Where("LOWER(tracks.name) = ?", normName).
		Where("races.status IN ?", []string{constants.RaceStatusScheduled, constants.RaceStatusCompleted})
	if seasonID != nil {
		query = query.Where("races.season_id = ?", *seasonID)
	}

	var race gormModels.Race
	err := query.Order("races.race_date DESC").First(&race).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &race, nil
}

func (r *EventResolver) findOrCreateTrack(tx *gorm.DB, trackName string) (*gormModels.Track, error) {
	norm := constants.NormalizeTrackName(trackName)

	var track gormModels.Track
	err := tx.Where("LOWER(name) = ?", norm).First(&track).Error
	if err == nil {
		return &track, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	track = gormModels.Track{Name: trackName}
	if err := tx.Create(&track).Error; err != nil {
		return nil, err
	}
	return &track, nil
}
