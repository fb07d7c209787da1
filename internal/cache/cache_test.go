package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	return New(client), server
}

func TestRememberCachesValue(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	computes := 0
	compute := func(context.Context) ([]string, error) {
		computes++
		return []string{"a", "b"}, nil
	}

	first, err := Remember(ctx, c, "popular_routes_10", RankingTTL, []string{GroupRoutes}, compute)
	if err != nil || len(first) != 2 {
		t.Fatalf("first remember: %v", err)
	}
	second, err := Remember(ctx, c, "popular_routes_10", RankingTTL, []string{GroupRoutes}, compute)
	if err != nil || len(second) != 2 {
		t.Fatalf("second remember: %v", err)
	}
	if computes != 1 {
		t.Fatalf("expected a single compute, got %d", computes)
	}
}

func TestInvalidateGroupRecomputes(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	value := "before"
	compute := func(context.Context) (string, error) { return value, nil }

	got, _ := Remember(ctx, c, "popular_destinations_5", RankingTTL, []string{GroupDestinations}, compute)
	if got != "before" {
		t.Fatalf("unexpected value: %v", got)
	}

	value = "after"
	got, _ = Remember(ctx, c, "popular_destinations_5", RankingTTL, []string{GroupDestinations}, compute)
	if got != "before" {
		t.Fatalf("expected cached value, got %v", got)
	}

	c.InvalidateGroup(ctx, GroupDestinations)
	got, _ = Remember(ctx, c, "popular_destinations_5", RankingTTL, []string{GroupDestinations}, compute)
	if got != "after" {
		t.Fatalf("expected recomputed value after invalidation, got %v", got)
	}
}

func TestInvalidateGroupLeavesOtherGroups(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	computes := 0
	compute := func(context.Context) (int, error) {
		computes++
		return computes, nil
	}

	_, _ = Remember(ctx, c, "popular_events_10", RankingTTL, []string{GroupEvents}, compute)
	_, _ = Remember(ctx, c, "popular_routes_10", RankingTTL, []string{GroupRoutes}, compute)

	c.InvalidateGroup(ctx, GroupEvents)

	got, _ := Remember(ctx, c, "popular_routes_10", RankingTTL, []string{GroupRoutes}, compute)
	if got != 2 {
		t.Fatalf("routes key should have survived, got compute result %d", got)
	}
}

func TestRememberTTLExpiry(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()

	computes := 0
	compute := func(context.Context) (int, error) {
		computes++
		return computes, nil
	}

	_, _ = Remember(ctx, c, "nearby_abc", NearbyTTL, []string{GroupDestinations}, compute)
	server.FastForward(NearbyTTL + time.Second)
	got, _ := Remember(ctx, c, "nearby_abc", NearbyTTL, []string{GroupDestinations}, compute)
	if got != 2 {
		t.Fatalf("expected recompute after TTL, got %d", got)
	}
}

func TestRememberFallsBackWithoutRedis(t *testing.T) {
	ctx := context.Background()

	got, err := Remember(ctx, New(nil), "key", time.Minute, nil, func(context.Context) (string, error) {
		return "direct", nil
	})
	if err != nil || got != "direct" {
		t.Fatalf("nil client fallback: %v %v", got, err)
	}

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	server.Close()

	got, err = Remember(ctx, New(client), "key", time.Minute, nil, func(context.Context) (string, error) {
		return "direct", nil
	})
	if err != nil || got != "direct" {
		t.Fatalf("dead redis fallback: %v %v", got, err)
	}
}

func TestRememberPropagatesComputeError(t *testing.T) {
	c, _ := newTestCache(t)

	wantErr := errors.New("store down")
	_, err := Remember(context.Background(), c, "key", time.Minute, nil, func(context.Context) (int, error) {
		return 0, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected compute error, got %v", err)
	}
}
