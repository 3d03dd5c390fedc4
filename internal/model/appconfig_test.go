package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultDepth != defaults.Depth {
		t.Errorf("Depth mismatch: config=%d settings=%d", cfg.DefaultDepth, defaults.Depth)
	}
	if cfg.DefaultIntersection != defaults.Intersection {
		t.Errorf("Intersection mismatch: config=%s settings=%s", cfg.DefaultIntersection, defaults.Intersection)
	}
	if cfg.DefaultPointTolerance != defaults.PointTolerance {
		t.Errorf("PointTolerance mismatch: config=%f settings=%f", cfg.DefaultPointTolerance, defaults.PointTolerance)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultDepth = 6
	cfg.DefaultIntersection = IntersectionOrientation
	cfg.DefaultWorkers = 4

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.Depth != 6 {
		t.Errorf("expected Depth=6, got %d", s.Depth)
	}
	if s.Intersection != IntersectionOrientation {
		t.Errorf("expected orientation mode, got %s", s.Intersection)
	}
	if s.Workers != 4 {
		t.Errorf("expected Workers=4, got %d", s.Workers)
	}
}

func TestAddRecentProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentProject("a.json", 2)
	cfg.AddRecentProject("b.json", 2)
	cfg.AddRecentProject("a.json", 2)
	cfg.AddRecentProject("c.json", 2)

	if len(cfg.RecentProjects) != 2 {
		t.Fatalf("expected 2 recent projects, got %v", cfg.RecentProjects)
	}
	if cfg.RecentProjects[0] != "c.json" || cfg.RecentProjects[1] != "a.json" {
		t.Errorf("unexpected order %v", cfg.RecentProjects)
	}
}
