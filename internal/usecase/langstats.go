package usecase

import (
	"context"
	"log"
	"sort"

	"github.com/naka-gawa/readme-activity/internal/domain"
	"github.com/naka-gawa/readme-activity/internal/gateway"
)

// LangStats aggregates per-repository language sizes into a ranked list.
type LangStats struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewLangStats creates a new LangStats instance.
func NewLangStats(fetcher gateway.Fetcher, logger *log.Logger) *LangStats {
	return &LangStats{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Aggregate sums language byte sizes across the sampled repositories and
// returns the top-N languages sorted by total size, descending. Ties keep
// encounter order. The first edge seen for a language decides its color;
// later edges only fill in a color the first one lacked.
func (l *LangStats) Aggregate(ctx context.Context, login string, repoLimit, perRepoLangs, topN int) ([]domain.LanguageStat, error) {
	repos, err := l.fetcher.FetchLanguages(ctx, login, repoLimit, perRepoLangs)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*domain.LanguageStat)
	var order []string
	for _, repo := range repos {
		for _, edge := range repo.Languages {
			if edge.Name == "" {
				continue
			}
			entry, ok := totals[edge.Name]
			if !ok {
				entry = &domain.LanguageStat{Name: edge.Name}
				totals[edge.Name] = entry
				order = append(order, edge.Name)
			}
			entry.Size += edge.Size
			if entry.Color == "" {
				entry.Color = edge.Color
			}
		}
	}

	ranked := make([]domain.LanguageStat, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, *totals[name])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Size > ranked[j].Size
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	l.logger.Printf("Aggregated %d languages across %d repositories.", len(ranked), len(repos))
	return ranked, nil
}
