package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate is a reusable plan configuration: region specs and settings,
// without any generated lots.
type ProjectTemplate struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
	Regions     []RegionSpec        `json:"regions"`
	Settings    SubdivisionSettings `json:"settings"`
}

// NewProjectTemplate creates a new template from the given project data.
func NewProjectTemplate(name, description string, regions []RegionSpec, settings SubdivisionSettings) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Regions:     copyRegions(regions),
		Settings:    settings,
	}
}

// ToProject creates a new Project from this template.
// Regions get fresh IDs so they are independent of the template.
func (t ProjectTemplate) ToProject(projectName string) Project {
	regions := make([]RegionSpec, len(t.Regions))
	for i, r := range t.Regions {
		regions[i] = NewRegionSpec(r.Name, r.Center, r.Range, r.NumPoints)
		if len(r.Boundary) > 0 {
			regions[i].Boundary = append(Outline(nil), r.Boundary...)
		}
	}

	p := NewProject()
	p.Name = projectName
	p.Regions = regions
	p.Settings = t.Settings
	return p
}

// TemplateStore holds a collection of project templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ProjectTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t ProjectTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

func copyRegions(regions []RegionSpec) []RegionSpec {
	if regions == nil {
		return []RegionSpec{}
	}
	cp := make([]RegionSpec, len(regions))
	for i, r := range regions {
		cp[i] = r
		if r.Boundary != nil {
			cp[i].Boundary = append(Outline(nil), r.Boundary...)
		}
	}
	return cp
}
