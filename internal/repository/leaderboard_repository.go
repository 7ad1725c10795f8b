package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	leaderboardAllTimeKey = "leaderboard:alltime"
	leaderboardWeeklyFmt  = "leaderboard:week:%s" // ISO year-week
)

// LeaderboardEntry is one ranked row from a leaderboard ZSET.
type LeaderboardEntry struct {
	UserID uint    `json:"userId"`
	XP     float64 `json:"xp"`
	Rank   int64   `json:"rank"`
}

// LeaderboardRepository keeps XP rankings in Redis sorted sets, one
// all-time set and a rolling weekly set.
type LeaderboardRepository struct {
	Client *redis.Client
}

func NewLeaderboardRepository(client *redis.Client) *LeaderboardRepository {
	return &LeaderboardRepository{Client: client}
}

func weeklyKey(now time.Time) string {
	year, week := now.ISOWeek()
	return fmt.Sprintf(leaderboardWeeklyFmt, fmt.Sprintf("%d-%02d", year, week))
}

// AddXP bumps the user's score in both sets. The weekly set expires two
// weeks out so stale weeks clean themselves up.
func (r *LeaderboardRepository) AddXP(ctx context.Context, userID uint, xp int) error {
	member := strconv.FormatUint(uint64(userID), 10)
	wk := weeklyKey(time.Now())

	pipe := r.Client.TxPipeline()
	pipe.ZIncrBy(ctx, leaderboardAllTimeKey, float64(xp), member)
	pipe.ZIncrBy(ctx, wk, float64(xp), member)
	pipe.Expire(ctx, wk, 14*24*time.Hour)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *LeaderboardRepository) top(ctx context.Context, key string, limit int) ([]LeaderboardEntry, error) {
	members, err := r.Client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, 0, len(members))
	for i, m := range members {
		id, err := strconv.ParseUint(fmt.Sprint(m.Member), 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID: uint(id),
			XP:     m.Score,
			Rank:   int64(i + 1),
		})
	}
	return entries, nil
}

func (r *LeaderboardRepository) TopAllTime(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	return r.top(ctx, leaderboardAllTimeKey, limit)
}

func (r *LeaderboardRepository) TopWeekly(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	return r.top(ctx, weeklyKey(time.Now()), limit)
}

// Rank returns the user's 1-based all-time rank and score. A user with no
// recorded XP gets rank 0.
func (r *LeaderboardRepository) Rank(ctx context.Context, userID uint) (int64, float64, error) {
	member := strconv.FormatUint(uint64(userID), 10)
	rank, err := r.Client.ZRevRank(ctx, leaderboardAllTimeKey, member).Result()
	if err == redis.Nil {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	score, err := r.Client.ZScore(ctx, leaderboardAllTimeKey, member).Result()
	if err != nil && err != redis.Nil {
		return 0, 0, err
	}
	return rank + 1, score, nil
}
