package evaluation

import "strings"

// RecallAtK computes Recall@K: the fraction of relevant labels found in the
// top-K retrieved labels. Comparison is case-insensitive. Returns 0.0 if
// relevant is empty.
func RecallAtK(relevant, retrieved []string, k int) float64 {
	if len(relevant) == 0 {
		return 0.0
	}

	relevantSet := make(map[string]struct{}, len(relevant))
	for _, r := range relevant {
		relevantSet[strings.ToLower(r)] = struct{}{}
	}

	topK := retrieved
	if k < len(topK) {
		topK = topK[:k]
	}

	found := make(map[string]struct{})
	for _, r := range topK {
		key := strings.ToLower(r)
		if _, ok := relevantSet[key]; ok {
			found[key] = struct{}{}
		}
	}

	return float64(len(found)) / float64(len(relevant))
}

// MRRAtK computes the reciprocal rank of the first relevant label in the
// top-K retrieved labels. Returns 0.0 if no relevant label is found.
func MRRAtK(relevant, retrieved []string, k int) float64 {
	if len(relevant) == 0 || len(retrieved) == 0 {
		return 0.0
	}

	relevantSet := make(map[string]struct{}, len(relevant))
	for _, r := range relevant {
		relevantSet[strings.ToLower(r)] = struct{}{}
	}

	topK := retrieved
	if k < len(topK) {
		topK = topK[:k]
	}

	for i, r := range topK {
		if _, ok := relevantSet[strings.ToLower(r)]; ok {
			return 1.0 / float64(i+1)
		}
	}

	return 0.0
}
