package service

import (
	"context"
	"encoding/json"

	"github.com/coachdesk/coachdesk-backend/internal/config"
	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NoticeStore is the notice persistence the service depends on.
type NoticeStore interface {
	List(ctx context.Context, limit int) ([]model.Notice, error)
	Create(ctx context.Context, n *model.Notice) error
	Update(ctx context.Context, id int, req *model.UpdateNoticeRequest) (*model.Notice, error)
	Delete(ctx context.Context, id int) error
}

// NoticeService handles the notice board. Listings are read-heavy, so they
// are served cache-aside from Redis and invalidated on every write.
type NoticeService struct {
	notices NoticeStore
	rdb     *redis.Client
	log     zerolog.Logger
}

// NewNoticeService creates a new NoticeService.
func NewNoticeService(notices NoticeStore, rdb *redis.Client, log zerolog.Logger) *NoticeService {
	return &NoticeService{
		notices: notices,
		rdb:     rdb,
		log:     log.With().Str("component", "notice_service").Logger(),
	}
}

// List retrieves notices newest-first, at most limit (0 = all), via the
// cache. Redis failures fall through to the database.
func (s *NoticeService) List(ctx context.Context, limit int) ([]model.Notice, error) {
	key := config.CacheKey.NoticeListKey()
	if limit > 0 {
		key = config.CacheKey.NoticeStudentFeedKey(limit)
	}

	if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var notices []model.Notice
		if json.Unmarshal([]byte(cached), &notices) == nil {
			return notices, nil
		}
	}

	notices, err := s.notices.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if notices == nil {
		notices = []model.Notice{}
	}

	if payload, err := json.Marshal(notices); err == nil {
		if err := s.rdb.Set(ctx, key, payload, config.ListCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Notice cache write failed")
		}
	}
	return notices, nil
}

// Create posts a notice and invalidates the cached listings.
func (s *NoticeService) Create(ctx context.Context, req *model.CreateNoticeRequest, postedBy int) (*model.Notice, error) {
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityNormal
	}

	notice := &model.Notice{
		Title:       req.Title,
		Content:     req.Content,
		TargetClass: req.TargetClass,
		TargetBoard: req.TargetBoard,
		Priority:    priority,
		PostedBy:    postedBy,
	}
	if err := s.notices.Create(ctx, notice); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return notice, nil
}

// Update edits a notice and invalidates the cached listings.
func (s *NoticeService) Update(ctx context.Context, id int, req *model.UpdateNoticeRequest) (*model.Notice, error) {
	notice, err := s.notices.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return notice, nil
}

// Delete removes a notice and invalidates the cached listings.
func (s *NoticeService) Delete(ctx context.Context, id int) error {
	if err := s.notices.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *NoticeService) invalidate(ctx context.Context) {
	keys := []string{
		config.CacheKey.NoticeListKey(),
		config.CacheKey.NoticeStudentFeedKey(model.StudentNoticeFeedLimit),
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Notice cache invalidation failed")
	}
}
