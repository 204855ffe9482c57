package config

import (
	"fmt"
	"time"
)

// ListCacheTTL bounds staleness of cached list reads even if an invalidation
// is missed.
const ListCacheTTL = 5 * time.Minute

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// NoticeListKey returns the cache key for the full notice board listing.
func (r *CacheKeyStruct) NoticeListKey() string {
	return "notices:all"
}

// NoticeStudentFeedKey returns the cache key for the trimmed student feed.
func (r *CacheKeyStruct) NoticeStudentFeedKey(limit int) string {
	return fmt.Sprintf("notices:feed:%d", limit)
}

// TimetableListKey returns the cache key for the full timetable listing.
func (r *CacheKeyStruct) TimetableListKey() string {
	return "timetable:all"
}

var CacheKey = NewCacheKeyStruct()
