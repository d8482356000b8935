// Package gateway provides access to the outside world the survey depends on:
// GitHub repository search (REST and GraphQL) and the git command line.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v84/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/ktrawler/internal/domain"
)

// searchResultLimit is the number of results GitHub search exposes per query.
// Pages past it are rejected by the API.
const searchResultLimit = 1000

// RepoFunc receives each discovered repository with its 1-based index across
// all pages and the total reported by the search. Returning false stops discovery.
type RepoFunc func(repo domain.RepoDescriptor, index, total int) bool

// RepositorySource discovers repositories matching a search query.
type RepositorySource interface {
	ForEachRepository(ctx context.Context, query string, fn RepoFunc) error
}

// GitHubSearcher is the REST implementation of RepositorySource.
type GitHubSearcher struct {
	restClient *github.Client
	pageSize   int
	logger     *slog.Logger
}

// NewHTTPClient builds the rate-limit aware HTTP client shared by the REST
// and GraphQL searchers. An empty token yields unauthenticated requests.
func NewHTTPClient(token string) (*http.Client, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	if token == "" {
		return &http.Client{Transport: rateLimitWaiter}, nil
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	return &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}, nil
}

// NewGitHubSearcher creates a REST searcher. A non-empty baseURL targets a
// GitHub Enterprise instance.
func NewGitHubSearcher(httpClient *http.Client, baseURL string, pageSize int, logger *slog.Logger) (*GitHubSearcher, error) {
	client := github.NewClient(httpClient)
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise URL: %w", err)
		}
	}

	return &GitHubSearcher{
		restClient: client,
		pageSize:   pageSize,
		logger:     logger,
	}, nil
}

// SearchPage fetches one page of repository search results. Pages are 1-based.
func (g *GitHubSearcher) SearchPage(ctx context.Context, query string, page int) (*domain.SearchResultPage, error) {
	opts := &github.SearchOptions{ListOptions: github.ListOptions{Page: page, PerPage: g.pageSize}}

	result, _, err := g.restClient.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search repositories with REST API: %w", err)
	}

	items := make([]domain.RepoDescriptor, 0, len(result.Repositories))
	for _, repo := range result.Repositories {
		items = append(items, domain.RepoDescriptor{
			FullName: repo.GetFullName(),
			CloneURL: repo.GetCloneURL(),
		})
	}

	return &domain.SearchResultPage{TotalCount: result.GetTotal(), Items: items}, nil
}

// ForEachRepository walks the search results page by page until the reported
// total has been yielded or fn asks to stop. Any fetch error ends the walk.
func (g *GitHubSearcher) ForEachRepository(ctx context.Context, query string, fn RepoFunc) error {
	return paginate(ctx, func(ctx context.Context, page int) (*domain.SearchResultPage, error) {
		g.logger.Debug("fetching search page", "query", query, "page", page)

		return g.SearchPage(ctx, query, page)
	}, fn)
}

type pageFunc func(ctx context.Context, page int) (*domain.SearchResultPage, error)

func paginate(ctx context.Context, fetch pageFunc, fn RepoFunc) error {
	page := 1
	total := -1
	fetched := 0
	index := 0

	for total == -1 || fetched < min(total, searchResultLimit) {
		result, err := fetch(ctx, page)
		if err != nil {
			return err
		}
		page++

		total = result.TotalCount
		fetched += len(result.Items)

		for _, repo := range result.Items {
			index++
			if !fn(repo, index, total) {
				return nil
			}
		}

		if len(result.Items) == 0 {
			break
		}
	}

	return nil
}

// GraphQLSearcher is the GraphQL implementation of RepositorySource.
type GraphQLSearcher struct {
	graphqlClient *githubv4.Client
	pageSize      int
	logger        *slog.Logger
}

// searchRepositoriesQuery pages through repository search results.
type searchRepositoriesQuery struct {
	Search struct {
		RepositoryCount int
		PageInfo        struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Nodes []struct {
			Repository struct {
				NameWithOwner string
				URL           string `graphql:"url"`
			} `graphql:"... on Repository"`
		}
	} `graphql:"search(query: $query, type: REPOSITORY, first: $first, after: $cursor)"`
}

// NewGraphQLSearcher creates a GraphQL searcher. A non-empty endpoint targets
// a GitHub Enterprise GraphQL URL.
func NewGraphQLSearcher(httpClient *http.Client, endpoint string, pageSize int, logger *slog.Logger) *GraphQLSearcher {
	client := githubv4.NewClient(httpClient)
	if endpoint != "" {
		client = githubv4.NewEnterpriseClient(endpoint, httpClient)
	}

	return &GraphQLSearcher{
		graphqlClient: client,
		pageSize:      pageSize,
		logger:        logger,
	}
}

// ForEachRepository walks the search connection cursor by cursor.
func (g *GraphQLSearcher) ForEachRepository(ctx context.Context, query string, fn RepoFunc) error {
	variables := map[string]interface{}{
		"query":  githubv4.String(query),
		"first":  githubv4.Int(g.pageSize),
		"cursor": (*githubv4.String)(nil),
	}

	index := 0
	for {
		var q searchRepositoriesQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return fmt.Errorf("failed to execute GraphQL repository search: %w", err)
		}

		total := q.Search.RepositoryCount
		for _, node := range q.Search.Nodes {
			repo := node.Repository
			if repo.NameWithOwner == "" {
				continue
			}

			index++
			if !fn(domain.RepoDescriptor{FullName: repo.NameWithOwner, CloneURL: repo.URL + ".git"}, index, total) {
				return nil
			}
		}

		if !q.Search.PageInfo.HasNextPage || index >= total || len(q.Search.Nodes) == 0 {
			return nil
		}
		variables["cursor"] = githubv4.NewString(q.Search.PageInfo.EndCursor)
		g.logger.Debug("fetching next page of repositories", "query", query, "yielded", index)
	}
}
