package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// MajorsListKey returns the cache key for the distinct majors list.
func (r *CacheKeyStruct) MajorsListKey() string {
	return "majors:list"
}

// MajorStatsKey returns the cache key for a major's summary statistics.
func (r *CacheKeyStruct) MajorStatsKey(major string) string {
	return fmt.Sprintf("major:%s:stats", major)
}

// ClassRankingsKey returns the cache key for a major's class rankings
// at a given result limit.
func (r *CacheKeyStruct) ClassRankingsKey(major string, limit int) string {
	return fmt.Sprintf("major:%s:rankings:%d", major, limit)
}

// ClassRankingsPattern matches every cached ranking entry for a major,
// regardless of limit. Used for invalidation after a write.
func (r *CacheKeyStruct) ClassRankingsPattern(major string) string {
	return fmt.Sprintf("major:%s:rankings:*", major)
}

var CacheKey = NewCacheKeyStruct()
