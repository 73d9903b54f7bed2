// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"

	"github.com/naka-gawa/github-profile-stats/internal/domain"
	"github.com/naka-gawa/github-profile-stats/internal/gateway"
	"github.com/naka-gawa/github-profile-stats/internal/providers"
)

// Resolver decides whether a name belongs to a user or an organization.
type Resolver struct {
	fetcher gateway.Fetcher
	logger  providers.Logger
}

// NewResolver creates a new Resolver instance.
func NewResolver(fetcher gateway.Fetcher, logger providers.Logger) *Resolver {
	return &Resolver{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Resolve looks the name up as a user first and as an organization only when no user exists.
// Any failure other than not-found stops the attempt and is reported as an UpstreamError.
func (r *Resolver) Resolve(ctx context.Context, name string) (domain.Resolution, error) {
	user, err := r.fetcher.GetUser(ctx, name)
	switch {
	case err == nil:
		r.logger.Debugf(providers.TypeUpstream, "Resolved %s as a user", name)
		return domain.Resolution{Kind: domain.KindUser, Profile: *user}, nil
	case !errors.Is(err, gateway.ErrNotFound):
		return domain.Resolution{}, upstreamOrContext("resolve user", err)
	}

	org, err := r.fetcher.GetOrganization(ctx, name)
	switch {
	case err == nil:
		r.logger.Debugf(providers.TypeUpstream, "Resolved %s as an organization", name)
		return domain.Resolution{Kind: domain.KindOrganization, Profile: *org}, nil
	case errors.Is(err, gateway.ErrNotFound):
		return domain.Resolution{}, &domain.NotFoundError{Name: name}
	default:
		return domain.Resolution{}, upstreamOrContext("resolve organization", err)
	}
}

// upstreamOrContext keeps cancellation visible to callers instead of hiding it behind an UpstreamError.
func upstreamOrContext(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return context.Canceled
	}
	return &domain.UpstreamError{Op: op, Err: err}
}
