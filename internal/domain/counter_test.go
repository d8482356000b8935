package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureCounter_Increment(t *testing.T) {
	type hit struct {
		project string
		file    string
		line    int
	}

	testCases := []struct {
		name         string
		track        bool
		hits         []hit
		wantProjects []string
	}{
		{
			name:         "tracked counter keeps one usage per increment",
			track:        true,
			hits:         []hit{{"p1", "a.kt", 1}, {"p1", "a.kt", 7}, {"p2", "b.kt", 3}},
			wantProjects: []string{"p1", "p2"},
		},
		{
			name:         "untracked counter keeps no usages",
			track:        false,
			hits:         []hit{{"p1", "a.kt", 1}, {"p3", "c.kt", 2}, {"p3", "c.kt", 9}},
			wantProjects: []string{"p1", "p3"},
		},
		{
			name:         "no increments",
			track:        true,
			wantProjects: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewFeatureCounter("Sample", tc.track)
			for _, h := range tc.hits {
				c.Increment(h.project, h.file, h.line)
			}

			assert.Equal(t, len(tc.hits), c.Count)
			if tc.track {
				assert.Len(t, c.Usages, c.Count)
			} else {
				assert.Empty(t, c.Usages)
			}
			assert.LessOrEqual(t, c.ProjectCount(), c.Count)
			assert.Equal(t, len(tc.wantProjects), c.ProjectCount())
			assert.Equal(t, tc.wantProjects, c.Projects())
		})
	}
}

func TestFeatureCounter_UsageOrder(t *testing.T) {
	c := NewFeatureCounter("Labeled expressions", true)
	c.Increment("p", "x.kt", 4)
	c.Increment("p", "x.kt", 2)

	assert.Equal(t, []FeatureUsage{
		{Project: "p", File: "x.kt", Line: 4},
		{Project: "p", File: "x.kt", Line: 2},
	}, c.Usages)
}

func TestNewSession(t *testing.T) {
	tracked := NewSession(false)
	statsOnly := NewSession(true)

	assert.Len(t, tracked.Counters(), len(statsOnly.Counters()))
	assert.Equal(t, "Error count", tracked.Counters()[0].Name)
	assert.Same(t, tracked.SyntaxErrors, tracked.Counters()[0])
	assert.True(t, tracked.SyntaxErrors.TrackUsages)
	assert.False(t, tracked.Classes.TrackUsages)

	for _, c := range statsOnly.Counters() {
		assert.False(t, c.TrackUsages, c.Name)
	}

	names := make(map[string]bool)
	for _, c := range tracked.Counters() {
		assert.False(t, names[c.Name], "duplicate counter %q", c.Name)
		names[c.Name] = true
	}
}

func TestRepoDescriptor_OwnerAndName(t *testing.T) {
	repo := RepoDescriptor{FullName: "JetBrains/kotlin"}

	assert.Equal(t, "JetBrains", repo.Owner())
	assert.Equal(t, "kotlin", repo.Name())
}

func TestSession_Summary(t *testing.T) {
	s := NewSession(false)
	s.RepositoriesAnalyzed = 1
	s.WhileLoops.Increment("p", "a.kt", 3)

	summary := s.Summary()

	assert.Equal(t, 1, summary.RepositoriesAnalyzed)
	assert.Len(t, summary.Features, len(s.Counters()))
	for _, f := range summary.Features {
		if f.Name == "'while' loops" {
			assert.Equal(t, 1, f.Count)
			assert.Equal(t, 1, f.Projects)
			assert.Empty(t, f.Usages)
		}
	}
}
