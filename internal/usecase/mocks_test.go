package usecase

import (
	"context"
	"fmt"

	"github.com/naka-gawa/github-profile-stats/internal/domain"
	"github.com/naka-gawa/github-profile-stats/internal/gateway"
	"github.com/naka-gawa/github-profile-stats/internal/providers"
	"github.com/stretchr/testify/mock"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) GetUser(ctx context.Context, login string) (*domain.AccountProfile, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountProfile), args.Error(1)
}

func (m *mockFetcher) GetOrganization(ctx context.Context, org string) (*domain.AccountProfile, error) {
	args := m.Called(ctx, org)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountProfile), args.Error(1)
}

func (m *mockFetcher) ListRepos(ctx context.Context, owner string, kind domain.AccountKind, page, perPage int) ([]domain.RepositorySummary, error) {
	args := m.Called(ctx, owner, kind, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RepositorySummary), args.Error(1)
}

func (m *mockFetcher) FetchContributionCalendar(ctx context.Context, login string) (*gateway.ContributionCalendar, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.ContributionCalendar), args.Error(1)
}

// mockStore is a mock implementation of the store.SnapshotStore interface.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Save(ctx context.Context, snapshot *domain.StatsSnapshot) (string, error) {
	args := m.Called(ctx, snapshot)
	return args.String(0), args.Error(1)
}

func (m *mockStore) GetByID(ctx context.Context, id string) (*domain.StatsSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatsSnapshot), args.Error(1)
}

func (m *mockStore) ListForOwner(ctx context.Context, ownerUserID string, page, pageSize int) ([]domain.SnapshotSummary, int, error) {
	args := m.Called(ctx, ownerUserID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.SnapshotSummary), args.Int(1), args.Error(2)
}

func (m *mockStore) FindLatestByName(ctx context.Context, name string) (*domain.StatsSnapshot, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatsSnapshot), args.Error(1)
}

func (m *mockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}

// testLogger records warnings so tests can assert on degraded paths.
type testLogger struct {
	warnings []string
}

func (l *testLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (l *testLogger) Warnf(_ providers.TypeEnum, format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}
func (l *testLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (l *testLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (l *testLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (l *testLogger) Close()                                                  {}

func strPtr(s string) *string { return &s }

func repo(name string, stars, forks int, lang *string) domain.RepositorySummary {
	return domain.RepositorySummary{
		FullName:  name,
		URL:       "https://github.com/" + name,
		StarCount: stars,
		ForkCount: forks,
		Language:  lang,
	}
}

// makeRepos returns n repositories named with the given prefix.
func makeRepos(prefix string, n int) []domain.RepositorySummary {
	repos := make([]domain.RepositorySummary, n)
	for i := range repos {
		repos[i] = repo(fmt.Sprintf("%s-%d", prefix, i), i, 0, nil)
	}
	return repos
}
