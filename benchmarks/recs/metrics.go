// ABOUTME: Ranking quality metrics for recommendation benchmarks
// ABOUTME: Precision@k, recall@k, and MRR against ground-truth relevance sets

package recs

// MetricsCalculator computes ranking scores for benchmark scenarios
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// PrecisionAtK computes the fraction of the top-k results that are relevant
func (m *MetricsCalculator) PrecisionAtK(ranked []string, relevant map[string]bool, k int) float64 {
	if k <= 0 || len(ranked) == 0 {
		return 0
	}
	if k > len(ranked) {
		k = len(ranked)
	}

	hits := 0
	for _, id := range ranked[:k] {
		if relevant[id] {
			hits++
		}
	}
	return float64(hits) / float64(k)
}

// RecallAtK computes the fraction of relevant items that appear in the top-k
func (m *MetricsCalculator) RecallAtK(ranked []string, relevant map[string]bool, k int) float64 {
	if len(relevant) == 0 {
		return 0
	}
	if k > len(ranked) {
		k = len(ranked)
	}

	hits := 0
	for _, id := range ranked[:k] {
		if relevant[id] {
			hits++
		}
	}
	return float64(hits) / float64(len(relevant))
}

// MRR computes the mean reciprocal rank of the first relevant result
func (m *MetricsCalculator) MRR(ranked []string, relevant map[string]bool) float64 {
	for i, id := range ranked {
		if relevant[id] {
			return 1.0 / float64(i+1)
		}
	}
	return 0
}
