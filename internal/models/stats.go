package models

// CategoryStat is one slice of the per-category breakdown.
type CategoryStat struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

// ProductStats is the server-computed aggregate over a filtered product set.
type ProductStats struct {
	TotalProducts int            `json:"totalProducts"`
	AveragePrice  float64        `json:"averagePrice"`
	ByCategory    []CategoryStat `json:"byCategory"`
}
