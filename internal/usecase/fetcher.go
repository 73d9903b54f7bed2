package usecase

import (
	"context"
	"errors"

	"github.com/naka-gawa/github-profile-stats/internal/domain"
	"github.com/naka-gawa/github-profile-stats/internal/gateway"
	"github.com/naka-gawa/github-profile-stats/internal/providers"
	"github.com/naka-gawa/github-profile-stats/internal/structures"
)

// PagePolicy bounds how much of an account's repository list is fetched.
type PagePolicy struct {
	PageSize int
	MaxRepos int
	MaxPages int
}

// DefaultPagePolicy returns the policy used when nothing is configured.
func DefaultPagePolicy() PagePolicy {
	return PagePolicy{PageSize: 100, MaxRepos: 500, MaxPages: 5}
}

// PagePolicyFromConfig fills unset fields of the configured policy with defaults.
func PagePolicyFromConfig(conf *structures.FetchConfig) PagePolicy {
	policy := DefaultPagePolicy()
	if conf == nil {
		return policy
	}
	if conf.PageSize > 0 {
		policy.PageSize = conf.PageSize
	}
	if conf.MaxRepos > 0 {
		policy.MaxRepos = conf.MaxRepos
	}
	if conf.MaxPages > 0 {
		policy.MaxPages = conf.MaxPages
	}
	return policy
}

// RepoFetcher walks the repository listing of one account page by page.
type RepoFetcher struct {
	fetcher gateway.Fetcher
	policy  PagePolicy
	logger  providers.Logger
}

// NewRepoFetcher creates a new RepoFetcher instance.
func NewRepoFetcher(fetcher gateway.Fetcher, policy PagePolicy, logger providers.Logger) *RepoFetcher {
	return &RepoFetcher{
		fetcher: fetcher,
		policy:  policy,
		logger:  logger,
	}
}

// FetchAll requests pages 1..N in order while the previous page was full.
// The second return value is true when the policy or a failed later page stopped the walk
// before the listing ended.
func (f *RepoFetcher) FetchAll(ctx context.Context, name string, kind domain.AccountKind) ([]domain.RepositorySummary, bool, error) {
	var repos []domain.RepositorySummary
	for page := 1; ; page++ {
		batch, err := f.fetcher.ListRepos(ctx, name, kind, page, f.policy.PageSize)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, false, ctxErr
			}
			if errors.Is(err, context.Canceled) {
				return nil, false, context.Canceled
			}
			if page == 1 {
				return nil, false, &domain.UpstreamError{Op: "list repositories", Err: err}
			}
			f.logger.Warnf(providers.TypeUpstream, "Stopping repository listing for %s at page %d: %v", name, page, err)
			return repos, true, nil
		}
		repos = append(repos, batch...)

		if len(batch) < f.policy.PageSize {
			// Natural end of the listing.
			if len(repos) > f.policy.MaxRepos {
				return repos[:f.policy.MaxRepos], true, nil
			}
			return repos, false, nil
		}
		if len(repos) >= f.policy.MaxRepos {
			f.logger.Infof(providers.TypeUpstream, "Repository cap of %d reached for %s", f.policy.MaxRepos, name)
			return repos[:f.policy.MaxRepos], true, nil
		}
		if page >= f.policy.MaxPages {
			f.logger.Infof(providers.TypeUpstream, "Page cap of %d reached for %s", f.policy.MaxPages, name)
			return repos, true, nil
		}
	}
}
