// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// AccountKind tells whether a name resolved to a user or an organization.
type AccountKind string

const (
	KindUser         AccountKind = "User"
	KindOrganization AccountKind = "Organization"
)

// UnknownCount marks a count the upstream API did not report.
const UnknownCount = -1

// MissingLanguage is shown in place of a repository language that upstream did not detect.
// It is a display value only and never appears as a histogram key.
const MissingLanguage = "N/A"

// AccountProfile is the profile metadata of the analyzed account at fetch time.
// FollowerCount is always 0 for organizations.
type AccountProfile struct {
	Name            string      `json:"name"`
	Login           string      `json:"login"`
	AvatarURL       string      `json:"avatarUrl"`
	Bio             string      `json:"bio"`
	PublicRepoCount int         `json:"publicRepos"`
	FollowerCount   int         `json:"followers"`
	Kind            AccountKind `json:"type"`
}

// Resolution is the outcome of resolving a name to an account.
// A name that resolves to nothing is reported as a NotFoundError instead.
type Resolution struct {
	Kind    AccountKind
	Profile AccountProfile
}

// RepositorySummary is the trimmed view of an upstream repository used by aggregation.
type RepositorySummary struct {
	FullName    string  `json:"fullName"`
	URL         string  `json:"url"`
	StarCount   int     `json:"stars"`
	ForkCount   int     `json:"forks"`
	Language    *string `json:"language"`
	Description *string `json:"description"`
}

// LanguageName returns the detected language or "" when there is none.
func (r RepositorySummary) LanguageName() string {
	if r.Language == nil {
		return ""
	}
	return *r.Language
}

// LanguageLabel returns the language for display, substituting MissingLanguage.
func (r RepositorySummary) LanguageLabel() string {
	if name := r.LanguageName(); name != "" {
		return name
	}
	return MissingLanguage
}

// LanguageCount is one histogram bucket. ID and Label both hold the language name.
type LanguageCount struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

// MostStarredRepo identifies the repository with the most stars.
// Stars is -1 when the account has no repositories.
type MostStarredRepo struct {
	Name  string `json:"name"`
	Stars int    `json:"stars"`
	URL   string `json:"url"`
}

// NoMostStarred returns the sentinel used when there are no repositories.
func NoMostStarred() MostStarredRepo {
	return MostStarredRepo{Name: "", Stars: -1, URL: ""}
}

// Empty reports whether m is the no-repositories sentinel.
func (m MostStarredRepo) Empty() bool {
	return m.Stars < 0
}

// AggregateResult is the statistics folded from a repository list.
type AggregateResult struct {
	Languages       []LanguageCount     `json:"languages"`
	TotalStars      int                 `json:"totalStars"`
	TotalForks      int                 `json:"totalForks"`
	MostStarredRepo MostStarredRepo     `json:"mostStarredRepo"`
	TopRepos        []RepositorySummary `json:"topRepos"`
}

// StatsSnapshot is one persisted, immutable aggregation result.
// TotalStars and TotalForks cover exactly the repositories that were fetched;
// IsPartial is set when fetching stopped before the last page.
type StatsSnapshot struct {
	ID              string              `json:"id"`
	AccountName     string              `json:"accountName"`
	Profile         AccountProfile      `json:"profile"`
	Languages       []LanguageCount     `json:"languages"`
	TotalStars      int                 `json:"totalStars"`
	TotalForks      int                 `json:"totalForks"`
	MostStarredRepo MostStarredRepo     `json:"mostStarredRepo"`
	TopRepos        []RepositorySummary `json:"topRepos"`
	IsPartial       bool                `json:"isPartial"`
	OwnerUserID     *string             `json:"ownerUserId"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// SnapshotSummary is the listing shape of a stored snapshot.
type SnapshotSummary struct {
	ID          string    `json:"id"`
	AccountName string    `json:"accountName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HistoryPage is one page of an owner's stored snapshots, newest first.
type HistoryPage struct {
	Items      []SnapshotSummary `json:"items"`
	TotalCount int               `json:"totalCount"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
}

// Comparison pairs the latest snapshots of two accounts.
type Comparison struct {
	First  *StatsSnapshot `json:"first"`
	Second *StatsSnapshot `json:"second"`
}
