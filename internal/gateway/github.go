// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/github-profile-stats/internal/domain"
	"github.com/naka-gawa/github-profile-stats/internal/providers"
	"github.com/naka-gawa/github-profile-stats/internal/structures"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// ErrNotFound is wrapped by gateway errors for accounts that do not exist upstream.
var ErrNotFound = errors.New("not found on GitHub")

const defaultRequestTimeout = 10 * time.Second

// CalendarDay is one raw day of the upstream contribution calendar.
type CalendarDay struct {
	Date  string
	Count int
}

// ContributionCalendar is the upstream contribution calendar for the last year.
type ContributionCalendar struct {
	TotalContributions int
	Days               []CalendarDay
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	GetUser(ctx context.Context, login string) (*domain.AccountProfile, error)
	GetOrganization(ctx context.Context, org string) (*domain.AccountProfile, error)
	// ListRepos returns one page of repositories owned by the account.
	ListRepos(ctx context.Context, owner string, kind domain.AccountKind, page, perPage int) ([]domain.RepositorySummary, error)
	FetchContributionCalendar(ctx context.Context, login string) (*ContributionCalendar, error)
}

// Factory builds a Fetcher authenticated with the given token.
type Factory func(token string) (Fetcher, error)

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        providers.Logger
	timeout       time.Duration
}

// contributionCalendarQuery fetches the last year of daily contribution counts.
type contributionCalendarQuery struct {
	User *struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				TotalContributions int
				Weeks              []struct {
					ContributionDays []struct {
						ContributionCount int
						Date              string
					}
				}
			}
		}
	} `graphql:"user(login: $login)"`
}

// NewFactory returns a Factory bound to the upstream settings in conf.
func NewFactory(conf *structures.Config, logger providers.Logger) Factory {
	return func(token string) (Fetcher, error) {
		return NewGitHubGateway(token, &conf.GitHub, logger)
	}
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, conf *structures.GitHubConfig, logger providers.Logger) (Fetcher, error) {
	var opts []github_ratelimit.Option
	if conf.MaxRateLimitSleep > 0 {
		opts = append(opts, github_ratelimit.WithSingleSleepLimit(conf.MaxRateLimitSleep, nil))
	}
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	timeout := conf.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
		Timeout: timeout,
	}

	restClient := github.NewClient(httpClient)
	if conf.APIURL != "" {
		restClient, err = restClient.WithEnterpriseURLs(conf.APIURL, conf.APIURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", conf.APIURL, err)
		}
	}
	graphqlClient := githubv4.NewClient(httpClient)
	if conf.GraphQLURL != "" {
		graphqlClient = githubv4.NewEnterpriseClient(conf.GraphQLURL, httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
		timeout:       timeout,
	}, nil
}

func (g *GitHubGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := g.timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (g *GitHubGateway) GetUser(ctx context.Context, login string) (*domain.AccountProfile, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	g.logger.Debugf(providers.TypeUpstream, "Fetching user profile %s", login)
	user, _, err := g.restClient.Users.Get(ctx, login)
	if err != nil {
		return nil, classifyRESTError(err, "get user")
	}
	// Organizations are also served by /users/{name}; they are resolved through /orgs instead.
	if user.GetType() == "Organization" {
		return nil, fmt.Errorf("get user: %s is an organization: %w", login, ErrNotFound)
	}

	return &domain.AccountProfile{
		Name:            firstNonEmpty(user.GetName(), user.GetLogin(), login),
		Login:           firstNonEmpty(user.GetLogin(), login),
		AvatarURL:       user.GetAvatarURL(),
		Bio:             user.GetBio(),
		PublicRepoCount: countOrUnknown(user.PublicRepos),
		FollowerCount:   user.GetFollowers(),
		Kind:            domain.KindUser,
	}, nil
}

func (g *GitHubGateway) GetOrganization(ctx context.Context, org string) (*domain.AccountProfile, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	g.logger.Debugf(providers.TypeUpstream, "Fetching organization profile %s", org)
	o, _, err := g.restClient.Organizations.Get(ctx, org)
	if err != nil {
		return nil, classifyRESTError(err, "get organization")
	}

	return &domain.AccountProfile{
		Name:            firstNonEmpty(o.GetName(), o.GetLogin(), org),
		Login:           firstNonEmpty(o.GetLogin(), org),
		AvatarURL:       o.GetAvatarURL(),
		Bio:             o.GetDescription(),
		PublicRepoCount: countOrUnknown(o.PublicRepos),
		FollowerCount:   0,
		Kind:            domain.KindOrganization,
	}, nil
}

func (g *GitHubGateway) ListRepos(ctx context.Context, owner string, kind domain.AccountKind, page, perPage int) ([]domain.RepositorySummary, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	listOpts := github.ListOptions{Page: page, PerPage: perPage}
	var repos []*github.Repository
	var err error
	switch kind {
	case domain.KindOrganization:
		opts := &github.RepositoryListByOrgOptions{Type: "public", ListOptions: listOpts}
		repos, _, err = g.restClient.Repositories.ListByOrg(ctx, owner, opts)
	default:
		opts := &github.RepositoryListByUserOptions{Type: "owner", ListOptions: listOpts}
		repos, _, err = g.restClient.Repositories.ListByUser(ctx, owner, opts)
	}
	if err != nil {
		return nil, classifyRESTError(err, fmt.Sprintf("list repositories page %d", page))
	}

	summaries := make([]domain.RepositorySummary, 0, len(repos))
	for _, repo := range repos {
		summaries = append(summaries, toSummary(repo))
	}
	g.logger.Debugf(providers.TypeUpstream, "Fetched %d repositories for %s (page %d)", len(summaries), owner, page)
	return summaries, nil
}

func (g *GitHubGateway) FetchContributionCalendar(ctx context.Context, login string) (*ContributionCalendar, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	g.logger.Debugf(providers.TypeUpstream, "Fetching contribution calendar for %s", login)
	variables := map[string]interface{}{"login": githubv4.String(login)}
	var q contributionCalendarQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		if strings.Contains(err.Error(), "Could not resolve to a User") {
			return nil, fmt.Errorf("contribution calendar for %s: %w", login, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to execute GraphQL query for contributions: %w", err)
	}
	if q.User == nil {
		return nil, fmt.Errorf("contribution calendar for %s: %w", login, ErrNotFound)
	}

	raw := q.User.ContributionsCollection.ContributionCalendar
	calendar := &ContributionCalendar{TotalContributions: raw.TotalContributions}
	for _, week := range raw.Weeks {
		for _, day := range week.ContributionDays {
			calendar.Days = append(calendar.Days, CalendarDay{Date: day.Date, Count: day.ContributionCount})
		}
	}
	return calendar, nil
}

// classifyRESTError maps a 404 to ErrNotFound and keeps context errors unwrappable.
func classifyRESTError(err error, op string) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("failed to %s with REST API: %w", op, err)
}

func toSummary(repo *github.Repository) domain.RepositorySummary {
	return domain.RepositorySummary{
		FullName:    repo.GetFullName(),
		URL:         repo.GetHTMLURL(),
		StarCount:   repo.GetStargazersCount(),
		ForkCount:   repo.GetForksCount(),
		Language:    nonEmpty(repo.Language),
		Description: nonEmpty(repo.Description),
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func countOrUnknown(n *int) int {
	if n == nil {
		return domain.UnknownCount
	}
	return *n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
