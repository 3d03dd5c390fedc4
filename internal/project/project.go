// Package project persists projects, application config, templates and
// backups as JSON files.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/piwi3910/parcelgen/internal/model"
)

// ErrInvalidProject is returned when a project file has no usable regions
// or settings.
var ErrInvalidProject = errors.New("invalid project")

// SaveProject writes a project to path as JSON.
func SaveProject(path string, p model.Project) error {
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("failed to save project %q: %w", p.Name, err)
	}
	glog.V(1).Infof("saved project %q to %s", p.Name, path)
	return nil
}

// LoadProject reads a project from path. Settings missing from the file keep
// their defaults, and regions without an ID get one.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}
	p := model.NewProject()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}
	if err := Validate(p); err != nil {
		return model.Project{}, err
	}
	for i := range p.Regions {
		if p.Regions[i].ID == "" {
			p.Regions[i].ID = uuid.New().String()[:8]
		}
	}
	return p, nil
}

// Validate checks that every region can be built and the depth is usable.
func Validate(p model.Project) error {
	if p.Settings.Depth < 0 {
		return fmt.Errorf("depth %d: %w", p.Settings.Depth, ErrInvalidProject)
	}
	for _, r := range p.Regions {
		if len(r.Boundary) == 0 && (r.NumPoints < 3 || r.Range <= 0) {
			return fmt.Errorf("region %q has no boundary and cannot be generated: %w", r.Name, ErrInvalidProject)
		}
		if len(r.Boundary) > 0 && len(r.Boundary) < 3 {
			return fmt.Errorf("region %q has %d boundary points: %w", r.Name, len(r.Boundary), ErrInvalidProject)
		}
		for _, pt := range r.Boundary {
			if !pt.IsFinite() {
				return fmt.Errorf("region %q has a non-finite point: %w", r.Name, ErrInvalidProject)
			}
		}
	}
	return nil
}
