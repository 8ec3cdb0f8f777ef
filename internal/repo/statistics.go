package repo

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/rogerio-castellano/catalog-console/internal/models"
)

// computeStatistics aggregates products into the statistics snapshot. The
// category breakdown is ordered by count, largest first, then by name.
func computeStatistics(products []models.Product) models.ProductStats {
	stats := models.ProductStats{
		TotalProducts: len(products),
		ByCategory:    []models.CategoryStat{},
	}
	if len(products) == 0 {
		return stats
	}

	var sum float64
	counts := map[string]int{}
	for _, p := range products {
		sum += p.Price
		counts[p.Category]++
	}
	stats.AveragePrice = roundCents(sum / float64(len(products)))

	for category, count := range counts {
		stats.ByCategory = append(stats.ByCategory, categoryStat(category, count, len(products)))
	}
	sortCategoryStats(stats.ByCategory)
	return stats
}

func categoryStat(category string, count, total int) models.CategoryStat {
	return models.CategoryStat{
		Category:   category,
		Count:      count,
		Percentage: fmt.Sprintf("%.2f", float64(count)*100/float64(total)),
	}
}

func sortCategoryStats(stats []models.CategoryStat) {
	slices.SortFunc(stats, func(a, b models.CategoryStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
