package endpoint

import "math/rand"

// WeightedRandomSelector picks a candidate probabilistically in
// proportion to its Priority: a candidate with priority 10 is tried
// roughly twice as often as one with priority 5.
type WeightedRandomSelector struct{}

func (s *WeightedRandomSelector) Pick(candidates []Candidate) (*Candidate, error) {
	if len(candidates) == 0 {
		return nil, errNoCandidates
	}

	total := 0
	for _, c := range candidates {
		total += c.Priority
	}
	if total <= 0 {
		return &candidates[0], nil
	}

	r := rand.Intn(total)
	for i := range candidates {
		r -= candidates[i].Priority
		if r < 0 {
			return &candidates[i], nil
		}
	}
	return &candidates[len(candidates)-1], nil
}

func (s *WeightedRandomSelector) Name() string {
	return "WeightedRandom"
}
