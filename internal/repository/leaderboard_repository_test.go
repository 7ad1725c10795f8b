package repository

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestLeaderboard(t *testing.T) (*LeaderboardRepository, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewLeaderboardRepository(client), mr
}

func TestLeaderboardRanksByXP(t *testing.T) {
	repo, _ := newTestLeaderboard(t)
	ctx := context.Background()

	if err := repo.AddXP(ctx, 1, 50); err != nil {
		t.Fatalf("add xp: %v", err)
	}
	if err := repo.AddXP(ctx, 2, 120); err != nil {
		t.Fatalf("add xp: %v", err)
	}
	if err := repo.AddXP(ctx, 3, 80); err != nil {
		t.Fatalf("add xp: %v", err)
	}

	top, err := repo.TopAllTime(ctx, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	wantOrder := []uint{2, 3, 1}
	for i, want := range wantOrder {
		if top[i].UserID != want {
			t.Errorf("rank %d: expected user %d, got %d", i+1, want, top[i].UserID)
		}
		if top[i].Rank != int64(i+1) {
			t.Errorf("rank %d: got rank field %d", i+1, top[i].Rank)
		}
	}
}

func TestLeaderboardAccumulatesXP(t *testing.T) {
	repo, _ := newTestLeaderboard(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.AddXP(ctx, 7, 10); err != nil {
			t.Fatalf("add xp: %v", err)
		}
	}

	rank, score, err := repo.Rank(ctx, 7)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if rank != 1 {
		t.Errorf("expected rank 1, got %d", rank)
	}
	if score != 30 {
		t.Errorf("expected score 30, got %v", score)
	}
}

func TestLeaderboardRankUnknownUser(t *testing.T) {
	repo, _ := newTestLeaderboard(t)

	rank, score, err := repo.Rank(context.Background(), 99)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if rank != 0 || score != 0 {
		t.Errorf("expected zero rank and score for unknown user, got %d/%v", rank, score)
	}
}

func TestLeaderboardWeeklyBoardIsSeparate(t *testing.T) {
	repo, mr := newTestLeaderboard(t)
	ctx := context.Background()

	if err := repo.AddXP(ctx, 1, 40); err != nil {
		t.Fatalf("add xp: %v", err)
	}

	weekly, err := repo.TopWeekly(ctx, 10)
	if err != nil {
		t.Fatalf("top weekly: %v", err)
	}
	if len(weekly) != 1 || weekly[0].XP != 40 {
		t.Fatalf("unexpected weekly board: %+v", weekly)
	}

	// The weekly set carries an expiry, the all-time one does not.
	if mr.TTL(leaderboardAllTimeKey) != 0 {
		t.Error("all-time key should not expire")
	}
}
