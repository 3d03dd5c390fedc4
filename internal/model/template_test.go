package model

import (
	"testing"
)

func TestNewProjectTemplate(t *testing.T) {
	regions := []RegionSpec{
		NewRegionSpec("North", Point2D{X: 0, Y: 100}, 50, 8),
		NewRegionSpec("South", Point2D{X: 0, Y: -100}, 40, 6),
	}
	settings := DefaultSettings()

	tmpl := NewProjectTemplate("Town", "Two districts", regions, settings)

	if tmpl.Name != "Town" {
		t.Errorf("expected name 'Town', got %q", tmpl.Name)
	}
	if tmpl.ID == "" {
		t.Error("expected non-empty ID")
	}
	if tmpl.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if len(tmpl.Regions) != 2 {
		t.Errorf("expected 2 regions, got %d", len(tmpl.Regions))
	}
}

func TestNewProjectTemplate_CopiesBoundaries(t *testing.T) {
	r := NewRegionSpec("Block", Point2D{}, 10, 4)
	r.Boundary = Outline{{0, 0}, {1, 0}, {1, 1}}

	tmpl := NewProjectTemplate("T", "", []RegionSpec{r}, DefaultSettings())
	r.Boundary[0] = Point2D{X: 99, Y: 99}

	if tmpl.Regions[0].Boundary[0] != (Point2D{}) {
		t.Errorf("template boundary should not alias caller slice, got %+v", tmpl.Regions[0].Boundary[0])
	}
}

func TestProjectTemplate_ToProject(t *testing.T) {
	regions := []RegionSpec{NewRegionSpec("Core", Point2D{X: 5, Y: 5}, 30, 10)}
	settings := DefaultSettings()
	settings.Depth = 5

	tmpl := NewProjectTemplate("Test", "desc", regions, settings)
	proj := tmpl.ToProject("My Plan")

	if proj.Name != "My Plan" {
		t.Errorf("expected project name 'My Plan', got %q", proj.Name)
	}
	if len(proj.Regions) != 1 {
		t.Fatalf("expected 1 region, got %d", len(proj.Regions))
	}
	if proj.Regions[0].ID == regions[0].ID {
		t.Error("project region should get a fresh ID")
	}
	if proj.Regions[0].Range != 30 {
		t.Errorf("expected range 30, got %f", proj.Regions[0].Range)
	}
	if proj.Settings.Depth != 5 {
		t.Errorf("expected depth 5, got %d", proj.Settings.Depth)
	}
}

func TestTemplateStore_AddRemoveFind(t *testing.T) {
	store := NewTemplateStore()
	a := NewProjectTemplate("A", "", nil, DefaultSettings())
	b := NewProjectTemplate("B", "", nil, DefaultSettings())
	store.Add(a)
	store.Add(b)

	if got := store.Names(); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("unexpected names %v", got)
	}
	if store.FindByName("B") == nil {
		t.Error("expected to find template B")
	}
	if !store.Remove(a.ID) {
		t.Error("expected Remove to succeed")
	}
	if store.Remove(a.ID) {
		t.Error("second Remove should report not found")
	}
	if store.FindByName("A") != nil {
		t.Error("template A should be gone")
	}
}
