package matcher

// Sentence-embedding models concentrate cosine similarity for related
// natural-language text in roughly [0.2, 0.95]; these bounds anchor the
// linear 0-100 mapping.
const (
	minUsefulSim = 0.3
	maxUsefulSim = 0.95
)

// calibrateBatch maps combined scores onto 0-100. The regime is chosen once
// per query from the best candidate and applied uniformly, so relative
// ordering stays consistent within a single result set. Scores from
// different queries are not comparable; that is intentional.
func calibrateBatch(combined []float64) []float64 {
	scores := make([]float64, len(combined))
	if len(combined) == 0 {
		return scores
	}
	top := combined[0]
	for _, c := range combined[1:] {
		if c > top {
			top = c
		}
	}
	for i, c := range combined {
		switch {
		case top < 0.3:
			// nothing matches well, compress everything into 0-30
			scores[i] = c / 0.3 * 30
		case top < 0.5:
			scores[i] = 30 + (c-0.3)/0.2*40
		default:
			scores[i] = clip((c-minUsefulSim)/(maxUsefulSim-minUsefulSim), 0, 1) * 100
		}
	}
	return scores
}

// calibratePair maps a single resume/JD cosine similarity onto 0-100 with a
// finer five-regime curve. Unlike ranking there is no batch to anchor on,
// so the regimes are fixed.
func calibratePair(sim float64) float64 {
	var score float64
	switch {
	case sim >= 0.75:
		score = 85 + (sim-0.75)/0.20*15
	case sim >= 0.60:
		score = 70 + (sim-0.60)/0.15*15
	case sim >= 0.45:
		score = 50 + (sim-0.45)/0.15*20
	case sim >= 0.30:
		score = 30 + (sim-0.30)/0.15*20
	default:
		score = sim / 0.30 * 30
	}
	return clip(score, 0, 100)
}

// matchLevel buckets a calibrated 0-100 score into a category label.
func matchLevel(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 65:
		return "Good"
	case score >= 50:
		return "Fair"
	case score >= 35:
		return "Poor"
	default:
		return "Very Poor"
	}
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
