package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"provafoco/internal/cache"
	"provafoco/internal/domain"
	"provafoco/internal/logger"
	"provafoco/internal/util"

	"go.uber.org/zap"
)

// GuestService keeps device-scoped answer logs for visitors without a session.
type GuestService interface {
	Log(ctx context.Context, guestID string) ([]domain.GuestAnswer, error)
	Append(ctx context.Context, guestID string, entry domain.GuestAnswer) error
	Clear(ctx context.Context, guestID string) error
	Stats(ctx context.Context, guestID string) (domain.GuestStats, error)
	// Compute aggregates a client-held log. Unreadable input is an empty log.
	Compute(raw []byte) domain.GuestStats
}

type guestService struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewGuestService creates a GuestService. Without a cache every log is empty and writes are dropped.
func NewGuestService(cache domain.Cache, ttl time.Duration) GuestService {
	if cache == nil {
		logger.Get().Warn("GuestService initialized without cache; guest logs will not be kept")
	}
	return &guestService{cache: cache, ttl: ttl}
}

func (s *guestService) Log(ctx context.Context, guestID string) ([]domain.GuestAnswer, error) {
	if s.cache == nil || guestID == "" {
		return []domain.GuestAnswer{}, nil
	}
	fields, err := s.cache.HGetAll(ctx, cache.GuestLogKey(guestID))
	if err != nil {
		return nil, err
	}

	// Fields are ULIDs, so sorting them restores insertion order.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]domain.GuestAnswer, 0, len(keys))
	for _, k := range keys {
		var entry domain.GuestAnswer
		if err := json.Unmarshal([]byte(fields[k]), &entry); err != nil {
			logger.Get().Debug("Dropping unreadable guest log entry", zap.String("guestID", guestID), zap.String("field", k))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *guestService) Append(ctx context.Context, guestID string, entry domain.GuestAnswer) error {
	if s.cache == nil || guestID == "" {
		return nil
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = time.Now().UnixMilli()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.cache.HAppend(ctx, cache.GuestLogKey(guestID), util.NewULID(), string(data), s.ttl)
}

func (s *guestService) Clear(ctx context.Context, guestID string) error {
	if s.cache == nil || guestID == "" {
		return nil
	}
	return s.cache.Delete(ctx, cache.GuestLogKey(guestID))
}

func (s *guestService) Stats(ctx context.Context, guestID string) (domain.GuestStats, error) {
	entries, err := s.Log(ctx, guestID)
	if err != nil {
		logger.Get().Warn("Guest log unavailable, serving empty stats", zap.String("guestID", guestID), zap.Error(err))
		entries = nil
	}
	return domain.ComputeGuestStats(entries), nil
}

func (s *guestService) Compute(raw []byte) domain.GuestStats {
	return domain.ComputeGuestStats(domain.ParseGuestLog(raw))
}
