// Package domain contains the core data structures of the survey: the
// repositories it discovers and the counters it fills while crawling them.
package domain

import "strings"

// RepoDescriptor identifies a repository found by discovery.
// FullName ("owner/name") is its identity.
type RepoDescriptor struct {
	FullName string `json:"full_name" yaml:"full_name"`
	CloneURL string `json:"clone_url" yaml:"clone_url"`
}

// Owner returns the part of FullName before the slash.
func (r RepoDescriptor) Owner() string {
	owner, _, _ := strings.Cut(r.FullName, "/")

	return owner
}

// Name returns the part of FullName after the slash.
func (r RepoDescriptor) Name() string {
	_, name, _ := strings.Cut(r.FullName, "/")

	return name
}

// SearchResultPage is one page of a repository search. TotalCount is only
// known once the first page has been fetched.
type SearchResultPage struct {
	TotalCount int
	Items      []RepoDescriptor
}
