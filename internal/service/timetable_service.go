package service

import (
	"context"
	"encoding/json"

	"github.com/coachdesk/coachdesk-backend/internal/config"
	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// TimetableStore is the timetable persistence the service depends on.
type TimetableStore interface {
	List(ctx context.Context) ([]model.TimetableEntry, error)
	Create(ctx context.Context, e *model.TimetableEntry) error
	Update(ctx context.Context, id int, req *model.UpdateTimetableRequest) (*model.TimetableEntry, error)
	Delete(ctx context.Context, id int) error
}

// TimetableService handles the weekly schedule, cache-aside like notices.
type TimetableService struct {
	entries TimetableStore
	rdb     *redis.Client
	log     zerolog.Logger
}

// NewTimetableService creates a new TimetableService.
func NewTimetableService(entries TimetableStore, rdb *redis.Client, log zerolog.Logger) *TimetableService {
	return &TimetableService{
		entries: entries,
		rdb:     rdb,
		log:     log.With().Str("component", "timetable_service").Logger(),
	}
}

// List retrieves all timetable entries via the cache, ordered by weekday then
// time slot. Redis failures fall through to the database.
func (s *TimetableService) List(ctx context.Context) ([]model.TimetableEntry, error) {
	key := config.CacheKey.TimetableListKey()

	if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var entries []model.TimetableEntry
		if json.Unmarshal([]byte(cached), &entries) == nil {
			return entries, nil
		}
	}

	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.TimetableEntry{}
	}

	if payload, err := json.Marshal(entries); err == nil {
		if err := s.rdb.Set(ctx, key, payload, config.ListCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Timetable cache write failed")
		}
	}
	return entries, nil
}

// Create adds a timetable slot, stamped with the posting teacher, and
// invalidates the cached listing.
func (s *TimetableService) Create(ctx context.Context, req *model.CreateTimetableRequest, createdBy int, teacherName string) (*model.TimetableEntry, error) {
	teacher := req.Teacher
	if teacher == "" {
		teacher = teacherName
	}

	entry := &model.TimetableEntry{
		Day:         req.Day,
		TimeSlot:    req.Time,
		Subject:     req.Subject,
		ClassName:   req.Class,
		TeacherName: teacher,
		CreatedBy:   createdBy,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return entry, nil
}

// Update edits a timetable slot and invalidates the cached listing.
func (s *TimetableService) Update(ctx context.Context, id int, req *model.UpdateTimetableRequest) (*model.TimetableEntry, error) {
	entry, err := s.entries.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return entry, nil
}

// Delete removes a timetable slot and invalidates the cached listing.
func (s *TimetableService) Delete(ctx context.Context, id int) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TimetableService) invalidate(ctx context.Context) {
	if err := s.rdb.Del(ctx, config.CacheKey.TimetableListKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Timetable cache invalidation failed")
	}
}
