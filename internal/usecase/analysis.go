package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/naka-gawa/github-profile-stats/internal/domain"
	"github.com/naka-gawa/github-profile-stats/internal/gateway"
	"github.com/naka-gawa/github-profile-stats/internal/providers"
	"github.com/naka-gawa/github-profile-stats/internal/store"
	"github.com/naka-gawa/github-profile-stats/internal/structures"
	"golang.org/x/sync/errgroup"
)

// HistoryPageSize is the number of snapshots returned per history page.
const HistoryPageSize = 10

const compareSeparator = "-vs-"

type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, name, providerToken string, ownerUserID *string) (string, error)
	GetAnalysis(ctx context.Context, id string) (*domain.StatsSnapshot, error)
	History(ctx context.Context, ownerUserID string, page int) (*domain.HistoryPage, error)
	Compare(ctx context.Context, slug string) (*domain.Comparison, error)
	Contributions(ctx context.Context, login, providerToken string) (*domain.ContributionData, error)
}

// AnalysisService runs the resolve, fetch, aggregate and save pipeline.
type AnalysisService struct {
	appToken string
	policy   PagePolicy
	factory  gateway.Factory
	store    store.SnapshotStore
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	now      func() time.Time
}

func NewAnalysisService(
	conf *structures.Config,
	factory gateway.Factory,
	snapshotStore store.SnapshotStore,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) *AnalysisService {
	return &AnalysisService{
		appToken: conf.GitHub.Token,
		policy:   PagePolicyFromConfig(&conf.Fetch),
		factory:  factory,
		store:    snapshotStore,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Analyze aggregates the named account and stores the result as a new snapshot.
// Nothing is stored when any step fails or ctx is cancelled.
func (s *AnalysisService) Analyze(ctx context.Context, name, providerToken string, ownerUserID *string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	fetcher, err := s.fetcherFor(providerToken)
	if err != nil {
		s.metrics.IncAnalyses(providers.OutcomeFailed)
		return "", err
	}

	resolution, err := NewResolver(fetcher, s.logger).Resolve(ctx, name)
	if err != nil {
		s.metrics.IncAnalyses(providers.OutcomeFailed)
		return "", err
	}

	repos, partial, err := NewRepoFetcher(fetcher, s.policy, s.logger).FetchAll(ctx, resolution.Profile.Login, resolution.Kind)
	if err != nil {
		s.metrics.IncAnalyses(providers.OutcomeFailed)
		return "", err
	}
	s.metrics.ObserveReposFetched(len(repos))

	profile := resolution.Profile
	if profile.PublicRepoCount == domain.UnknownCount {
		profile.PublicRepoCount = len(repos)
	}
	aggregate := Aggregate(repos)

	if err := ctx.Err(); err != nil {
		s.metrics.IncAnalyses(providers.OutcomeFailed)
		return "", err
	}

	snapshot := &domain.StatsSnapshot{
		AccountName:     name,
		Profile:         profile,
		Languages:       aggregate.Languages,
		TotalStars:      aggregate.TotalStars,
		TotalForks:      aggregate.TotalForks,
		MostStarredRepo: aggregate.MostStarredRepo,
		TopRepos:        aggregate.TopRepos,
		IsPartial:       partial,
		OwnerUserID:     ownerUserID,
		CreatedAt:       s.now().UTC(),
	}

	start := time.Now()
	id, err := s.store.Save(ctx, snapshot)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		s.metrics.IncAnalyses(providers.OutcomeFailed)
		return "", &domain.PersistenceError{Op: "save snapshot", Err: err}
	}

	outcome := providers.OutcomeComplete
	if partial {
		outcome = providers.OutcomePartial
	}
	s.metrics.IncAnalyses(outcome)
	s.logger.Infof(providers.TypeApp, "Stored analysis %s for %s (%d repositories, partial=%t)", id, name, len(repos), partial)
	return id, nil
}

func (s *AnalysisService) GetAnalysis(ctx context.Context, id string) (*domain.StatsSnapshot, error) {
	snapshot, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "get snapshot", Err: err}
	}
	if snapshot == nil {
		return nil, &domain.NotFoundError{Subject: "Analysis", Name: id}
	}
	return snapshot, nil
}

func (s *AnalysisService) History(ctx context.Context, ownerUserID string, page int) (*domain.HistoryPage, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, &domain.ValidationError{Field: "ownerUserId", Reason: "is required"}
	}
	if page < 1 {
		page = 1
	}

	items, total, err := s.store.ListForOwner(ctx, ownerUserID, page, HistoryPageSize)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list snapshots", Err: err}
	}
	if items == nil {
		items = []domain.SnapshotSummary{}
	}
	return &domain.HistoryPage{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   HistoryPageSize,
	}, nil
}

// Compare loads the latest stored snapshot of both accounts named by a "first-vs-second" slug.
func (s *AnalysisService) Compare(ctx context.Context, slug string) (*domain.Comparison, error) {
	first, second, ok := strings.Cut(slug, compareSeparator)
	first, second = strings.TrimSpace(first), strings.TrimSpace(second)
	if !ok || first == "" || second == "" {
		return nil, &domain.ValidationError{Field: "slug", Reason: fmt.Sprintf("must look like 'first%ssecond'", compareSeparator)}
	}

	var comparison domain.Comparison
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		comparison.First, err = s.store.FindLatestByName(egCtx, first)
		return err
	})
	eg.Go(func() error {
		var err error
		comparison.Second, err = s.store.FindLatestByName(egCtx, second)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, &domain.PersistenceError{Op: "find latest snapshot", Err: err}
	}

	if comparison.First == nil {
		return nil, &domain.NotFoundError{Subject: "Analysis for", Name: first}
	}
	if comparison.Second == nil {
		return nil, &domain.NotFoundError{Subject: "Analysis for", Name: second}
	}
	return &comparison, nil
}

// Contributions fetches the contribution calendar of a user and derives its statistics.
func (s *AnalysisService) Contributions(ctx context.Context, login, providerToken string) (*domain.ContributionData, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, &domain.ValidationError{Field: "login", Reason: "must not be empty"}
	}

	fetcher, err := s.fetcherFor(providerToken)
	if err != nil {
		return nil, err
	}

	calendar, err := fetcher.FetchContributionCalendar(ctx, login)
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		return nil, &domain.NotFoundError{Subject: "User", Name: login}
	case err != nil:
		return nil, upstreamOrContext("fetch contribution calendar", err)
	}

	days := FlattenCalendar(calendar, s.logger)
	return &domain.ContributionData{
		Contributions: days,
		Stats:         AnalyzeContributions(days, calendar.TotalContributions, s.now()),
	}, nil
}

// fetcherFor prefers the caller's own token over the shared application token.
func (s *AnalysisService) fetcherFor(providerToken string) (gateway.Fetcher, error) {
	token := strings.TrimSpace(providerToken)
	if token == "" {
		token = s.appToken
	}
	if token == "" {
		s.logger.Errorf(providers.TypeApp, "No GitHub token available: set GITHUB_TOKEN or send X-Provider-Token")
		return nil, &domain.ConfigError{Err: domain.ErrMissingToken}
	}
	fetcher, err := s.factory(token)
	if err != nil {
		return nil, &domain.ConfigError{Err: err}
	}
	return fetcher, nil
}
