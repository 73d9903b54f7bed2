package di

import (
	"github.com/naka-gawa/github-profile-stats/internal/providers"
	"github.com/naka-gawa/github-profile-stats/internal/store"
	"github.com/naka-gawa/github-profile-stats/internal/structures"
	"github.com/naka-gawa/github-profile-stats/internal/usecase"
)

// Service bundles what one-shot CLI commands need.
type Service struct {
	Config   *structures.Config
	Analysis *usecase.AnalysisService
	Store    store.SnapshotStore
	Logger   providers.Logger
}

// Close releases the store connection and log outputs.
func (s *Service) Close() {
	if err := s.Store.Close(); err != nil {
		s.Logger.Errorf(providers.TypeStore, "Failed to close store: %v", err)
	}
	s.Logger.Close()
}
