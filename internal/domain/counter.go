package domain

import "sort"

// FeatureUsage is one located occurrence of a construct.
type FeatureUsage struct {
	Project string `json:"project" yaml:"project"`
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
	Line    int    `json:"line" yaml:"line"`
}

// FeatureCounter accumulates occurrences of one construct category.
// Usages are recorded only when TrackUsages is set.
type FeatureCounter struct {
	Name        string
	TrackUsages bool
	Count       int
	Usages      []FeatureUsage
	projects    map[string]struct{}
}

// NewFeatureCounter creates an empty counter.
func NewFeatureCounter(name string, trackUsages bool) *FeatureCounter {
	return &FeatureCounter{
		Name:        name,
		TrackUsages: trackUsages,
		projects:    make(map[string]struct{}),
	}
}

// Increment records one occurrence in project at file:line.
func (c *FeatureCounter) Increment(project, file string, line int) {
	c.Count++
	c.projects[project] = struct{}{}

	if c.TrackUsages {
		c.Usages = append(c.Usages, FeatureUsage{Project: project, File: file, Line: line})
	}
}

// ProjectCount returns the number of distinct projects seen.
func (c *FeatureCounter) ProjectCount() int {
	return len(c.projects)
}

// Projects returns the distinct projects seen, sorted.
func (c *FeatureCounter) Projects() []string {
	projects := make([]string, 0, len(c.projects))
	for p := range c.projects {
		projects = append(projects, p)
	}
	sort.Strings(projects)

	return projects
}
