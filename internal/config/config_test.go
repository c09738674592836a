package config

import "testing"

func TestLoadScoringDefaults(t *testing.T) {
	t.Setenv("SCORE_WEIGHT_CUSTOMER", "")
	t.Setenv("REVIEW_FLOOR_OVERALL", "")
	t.Setenv("ROUTE_AUTO_APPROVE", "")
	t.Setenv("ROUTE_QUICK_REVIEW", "")

	cfg := Load()
	if cfg.ScoreWeightCustomer != 0.3 || cfg.ScoreWeightPolicy != 0.3 {
		t.Fatalf("expected default match weights 0.3, got %v/%v", cfg.ScoreWeightCustomer, cfg.ScoreWeightPolicy)
	}
	if cfg.ScoreWeightReconciliation != 0.2 || cfg.ScoreWeightQuality != 0.2 {
		t.Fatalf("expected default aux weights 0.2, got %v/%v", cfg.ScoreWeightReconciliation, cfg.ScoreWeightQuality)
	}
	if cfg.ReviewFloorOverall != 0.6 {
		t.Fatalf("expected default overall floor 0.6, got %v", cfg.ReviewFloorOverall)
	}
	if cfg.RouteAutoApprove != 0.8 || cfg.RouteQuickReview != 0.4 {
		t.Fatalf("expected default route thresholds 0.8/0.4, got %v/%v", cfg.RouteAutoApprove, cfg.RouteQuickReview)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("ROUTE_AUTO_APPROVE", "0.9")
	t.Setenv("WATCH_RATE_PER_SEC", "2.5")
	t.Setenv("WATCH_BURST", "3")
	t.Setenv("NATS_SUBJECT_PREFIX", "docs.v2")

	cfg := Load()
	if cfg.RouteAutoApprove != 0.9 {
		t.Fatalf("expected auto approve override 0.9, got %v", cfg.RouteAutoApprove)
	}
	if cfg.WatchRatePerSec != 2.5 || cfg.WatchBurst != 3 {
		t.Fatalf("expected watch overrides, got %v/%d", cfg.WatchRatePerSec, cfg.WatchBurst)
	}
	if cfg.NATSSubjectPrefix != "docs.v2" {
		t.Fatalf("expected subject prefix override, got %q", cfg.NATSSubjectPrefix)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("ROUTE_QUICK_REVIEW", "not-a-number")
	t.Setenv("WATCH_BURST", "ten")

	cfg := Load()
	if cfg.RouteQuickReview != 0.4 {
		t.Fatalf("expected fallback 0.4 for malformed float, got %v", cfg.RouteQuickReview)
	}
	if cfg.WatchBurst != 10 {
		t.Fatalf("expected fallback 10 for malformed int, got %d", cfg.WatchBurst)
	}
}
