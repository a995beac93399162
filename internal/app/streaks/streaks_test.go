package streaks

import (
	"context"
	"testing"

	"chainlink-service/internal/domain"
	"chainlink-service/internal/store"
)

func TestGetReturnsZeroStreakForNewUser(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), "2026")

	streak, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if streak.UserID != "u1" || streak.Campaign != "2026" || streak.Count != 0 {
		t.Fatalf("expected zero streak, got %+v", streak)
	}
}

func TestGetReturnsStoredStreak(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st, "2026")
	ctx := context.Background()

	if err := st.SaveStreak(ctx, domain.Streak{UserID: "u1", Campaign: "2026", Count: 4, Longest: 6, Wins: 9, Losses: 3}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	streak, err := svc.Get(ctx, "u1")
	if err != nil || streak.Count != 4 || streak.Longest != 6 {
		t.Fatalf("unexpected streak: %v %+v", err, streak)
	}
}
