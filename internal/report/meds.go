package report

import "math"

// CompareMedicationLists normalizes both medication lists and computes the
// Jaccard overlap of the resulting sets, plus the three set partitions. Pure
// and total: two empty lists score 0.
func CompareMedicationLists(aiMeds, doctorMeds []string) MedicationComparison {
	aiSet, aiOrder := normalizedSet(aiMeds)
	docSet, docOrder := normalizedSet(doctorMeds)

	intersection := make([]string, 0)
	aiOnly := make([]string, 0)
	for _, med := range aiOrder {
		if _, ok := docSet[med]; ok {
			intersection = append(intersection, med)
		} else {
			aiOnly = append(aiOnly, med)
		}
	}

	doctorOnly := make([]string, 0)
	for _, med := range docOrder {
		if _, ok := aiSet[med]; !ok {
			doctorOnly = append(doctorOnly, med)
		}
	}

	unionSize := len(aiSet) + len(docSet) - len(intersection)
	score := 0.0
	if unionSize > 0 {
		score = float64(len(intersection)) / float64(unionSize) * 100
	}

	return MedicationComparison{
		JaccardScore: round2(score),
		Intersection: intersection,
		AIOnly:       aiOnly,
		DoctorOnly:   doctorOnly,
	}
}

// normalizedSet returns the canonicalized set plus first-seen ordering so the
// partitions come out in a stable order.
func normalizedSet(meds []string) (map[string]struct{}, []string) {
	set := make(map[string]struct{}, len(meds))
	order := make([]string, 0, len(meds))
	for _, med := range meds {
		norm := NormalizeMedName(med)
		if norm == "" {
			continue
		}
		if _, seen := set[norm]; seen {
			continue
		}
		set[norm] = struct{}{}
		order = append(order, norm)
	}
	return set, order
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
