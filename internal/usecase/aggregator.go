package usecase

import (
	"slices"
	"sort"

	"github.com/naka-gawa/github-profile-stats/internal/domain"
)

const (
	topRepoCount    = 5
	unknownRepoName = "Unknown Repo"
	unknownRepoURL  = "#"
)

// Aggregate folds a repository list into the statistics of a snapshot.
// The result depends only on the order and content of repos.
func Aggregate(repos []domain.RepositorySummary) domain.AggregateResult {
	result := domain.AggregateResult{
		Languages:       []domain.LanguageCount{},
		MostStarredRepo: domain.NoMostStarred(),
		TopRepos:        []domain.RepositorySummary{},
	}

	// Index into Languages keeps first-seen order without iterating a map.
	langIndex := make(map[string]int)
	for _, repo := range repos {
		result.TotalStars += repo.StarCount
		result.TotalForks += repo.ForkCount

		if lang := repo.LanguageName(); lang != "" {
			if i, ok := langIndex[lang]; ok {
				result.Languages[i].Value++
			} else {
				langIndex[lang] = len(result.Languages)
				result.Languages = append(result.Languages, domain.LanguageCount{ID: lang, Label: lang, Value: 1})
			}
		}

		if repo.StarCount > result.MostStarredRepo.Stars {
			result.MostStarredRepo = domain.MostStarredRepo{
				Name:  orDefault(repo.FullName, unknownRepoName),
				Stars: repo.StarCount,
				URL:   orDefault(repo.URL, unknownRepoURL),
			}
		}
	}

	sort.SliceStable(result.Languages, func(i, j int) bool {
		return result.Languages[i].Value > result.Languages[j].Value
	})

	sorted := slices.Clone(repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StarCount > sorted[j].StarCount
	})
	for _, repo := range sorted[:min(topRepoCount, len(sorted))] {
		result.TopRepos = append(result.TopRepos, copySummary(repo))
	}

	return result
}

func copySummary(repo domain.RepositorySummary) domain.RepositorySummary {
	out := repo
	if repo.Language != nil {
		lang := *repo.Language
		out.Language = &lang
	}
	if repo.Description != nil {
		desc := *repo.Description
		out.Description = &desc
	}
	return out
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
