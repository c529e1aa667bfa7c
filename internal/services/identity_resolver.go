package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"apexleague/paddock/internal/common"
	gormModels "apexleague/paddock/internal/models/gorm"
)

const mappingCacheTTL = 30 * time.Second

// RawIdentity is the simulator-reported identity of one result row.
type RawIdentity struct {
	DriverName string
	TeamName   string
	CarNumber  int
	NetworkID  *string
	SteamID    *string
}

// Resolution is the outcome of resolving one raw identity. MemberID is nil
// when no mapping matched; the raw fields stay on the result row so a human
// can map the entry later.
type Resolution struct {
	MemberID     *string
	MappingID    string
	MappedName   string
	MappedNumber *int
}

// MappingSource supplies the active mappings for a season in one read.
type MappingSource interface {
	ActiveBySeason(ctx context.Context, seasonID string) ([]gormModels.DriverMapping, error)
}

// IdentityResolver maps simulator identities to league members using an
// ordered list of match strategies; the first hit wins. New strategies slot
// into the list without touching the existing ones.
type IdentityResolver struct {
	mappings MappingSource
	cache    common.CacheInterface
}

func NewIdentityResolver(mappings MappingSource, cache common.CacheInterface) *IdentityResolver {
	return &IdentityResolver{mappings: mappings, cache: cache}
}

type matchStrategy func(raw RawIdentity, m *gormModels.DriverMapping) bool

// Strategy order is the resolution priority: network id beats platform id
// beats name+team beats bare name.
var matchStrategies = []matchStrategy{
	matchByNetworkID,
	matchBySteamID,
	matchByNameAndTeam,
	matchByName,
}

func matchByNetworkID(raw RawIdentity, m *gormModels.DriverMapping) bool {
	return raw.NetworkID != nil && m.NetworkID != nil && *raw.NetworkID == *m.NetworkID
}

func matchBySteamID(raw RawIdentity, m *gormModels.DriverMapping) bool {
	return raw.SteamID != nil && m.SteamID != nil && *raw.SteamID == *m.SteamID
}

func matchByNameAndTeam(raw RawIdentity, m *gormModels.DriverMapping) bool {
	return raw.DriverName != "" && m.TeamName != nil &&
		strings.EqualFold(raw.DriverName, m.DriverName) &&
		strings.EqualFold(raw.TeamName, *m.TeamName)
}

func matchByName(raw RawIdentity, m *gormModels.DriverMapping) bool {
	return raw.DriverName != "" && strings.EqualFold(raw.DriverName, m.DriverName)
}

// Resolve runs the strategy waterfall for one identity against an already
// loaded mapping set. Pure; no I/O.
func (r *IdentityResolver) Resolve(raw RawIdentity, mappings []gormModels.DriverMapping) Resolution {
	for _, strategy := range matchStrategies {
		for i := range mappings {
			m := &mappings[i]
			if strategy(raw, m) {
				memberID := m.MemberID
				return Resolution{
					MemberID:     &memberID,
					MappingID:    m.ID,
					MappedName:   m.DriverName,
					MappedNumber: m.CarNumber,
				}
			}
		}
	}
	return Resolution{}
}

// ResolveSession resolves every identity of a session against one mapping
// fetch. Resolution runs inside the import transaction, so the mapping set
// is loaded once (and briefly cached) instead of queried per driver.
func (r *IdentityResolver) ResolveSession(ctx context.Context, seasonID string, ids []RawIdentity) ([]Resolution, error) {
	mappings, err := r.seasonMappings(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mappings for season %s: %w", seasonID, err)
	}

	out := make([]Resolution, len(ids))
	resolved := 0
	for i, raw := range ids {
		out[i] = r.Resolve(raw, mappings)
		if out[i].MemberID != nil {
			resolved++
		}
	}
	log.Printf("[IdentityResolver] Resolved %d/%d entries for season %s", resolved, len(ids), seasonID)
	return out, nil
}

func (r *IdentityResolver) seasonMappings(ctx context.Context, seasonID string) ([]gormModels.DriverMapping, error) {
	key := "MAPPINGS_" + seasonID
	val, err := r.cache.GetOrSet(key, mappingCacheTTL, func() (any, error) {
		return r.mappings.ActiveBySeason(ctx, seasonID)
	})
	if err != nil {
		return nil, err
	}
	mappings, ok := val.([]gormModels.DriverMapping)
	if !ok {
		return r.mappings.ActiveBySeason(ctx, seasonID)
	}
	return mappings, nil
}

// InvalidateSeason drops the cached mapping set after a mapping change.
func (r *IdentityResolver) InvalidateSeason(seasonID string) {
	r.cache.Delete("MAPPINGS_" + seasonID)
}
