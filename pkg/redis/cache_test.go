package redis

import (
	"context"
	"testing"
	"time"
)

func TestCacheDisabledIsNoOp(t *testing.T) {
	cache := NewCache(&Client{enabled: false}, "test")
	ctx := context.Background()

	if err := cache.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Errorf("Set on disabled cache: %v", err)
	}

	var dest string
	found, err := cache.Get(ctx, "k", &dest)
	if err != nil {
		t.Errorf("Get on disabled cache: %v", err)
	}
	if found {
		t.Error("Get on disabled cache reported a hit")
	}

	if err := cache.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete on disabled cache: %v", err)
	}
}

func TestBarsKey(t *testing.T) {
	got := BarsKey("sh601318", "2022-01-01", "2022-12-31")
	want := "bars:sh601318:2022-01-01:2022-12-31"
	if got != want {
		t.Errorf("BarsKey = %q, want %q", got, want)
	}
}

func TestProfileKey(t *testing.T) {
	if got := ProfileKey("sz000001"); got != "profile:sz000001" {
		t.Errorf("ProfileKey = %q", got)
	}
}
