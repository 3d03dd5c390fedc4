package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default engine settings applied to new projects
	DefaultDepth           int              `json:"default_depth"`
	DefaultIntersection    IntersectionMode `json:"default_intersection"`
	DefaultPointTolerance  float64          `json:"default_point_tolerance"`
	DefaultWorkers         int              `json:"default_workers"`
	DefaultMaxRoadDistance float64          `json:"default_max_road_distance"`

	// Application preferences
	OutputDir      string   `json:"output_dir"`
	ExportFormats  []string `json:"export_formats"` // "pdf", "dxf", "xlsx", "labels"
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultDepth:           defaults.Depth,
		DefaultIntersection:    defaults.Intersection,
		DefaultPointTolerance:  defaults.PointTolerance,
		DefaultWorkers:         defaults.Workers,
		DefaultMaxRoadDistance: defaults.MaxRoadDistance,
		OutputDir:              ".",
		ExportFormats:          []string{"pdf"},
		RecentProjects:         []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a SubdivisionSettings struct.
// This is used when creating a new project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *SubdivisionSettings) {
	s.Depth = c.DefaultDepth
	s.Intersection = c.DefaultIntersection
	s.PointTolerance = c.DefaultPointTolerance
	s.Workers = c.DefaultWorkers
	s.MaxRoadDistance = c.DefaultMaxRoadDistance
}

// AddRecentProject records path at the head of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentProjects = recent
}
