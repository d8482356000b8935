package config

import "time"

// GitHub discovery defaults.
const (
	DefaultAPI      = APIREST
	DefaultQuery    = "language:kotlin"
	DefaultPageSize = 100
)

// Corpus defaults.
const (
	DefaultCloneCooldown  = 15 * time.Second
	DefaultUpdateCooldown = 5 * time.Second
	DefaultGitBinary      = "git"
)

// Analysis defaults.
const (
	DefaultTestDataDir       = "testData"
	DefaultExcludedReposFile = "excludedRepos.txt"
	DefaultPrivateReposFile  = "privateRepos.txt"
	DefaultMaxRepoCount      = 1000000
)

// DefaultFormat is the report format used when none is configured.
const DefaultFormat = FormatText
