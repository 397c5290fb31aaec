package usecase

import (
	"fmt"

	"github.com/ojayWillow/latvian-price-scraper/internal/domain"
)

// MatchPolicy selects how listings are grouped across sources.
type MatchPolicy string

const (
	// PolicyAnchorSource matches every listing of a designated anchor source
	// against the best-scoring candidate of each other source.
	PolicyAnchorSource MatchPolicy = "anchor"

	// PolicySymmetric clusters the whole pool in input order: each ungrouped
	// listing seeds a group and absorbs later ungrouped listings from other
	// sources that score at or above the threshold against it.
	PolicySymmetric MatchPolicy = "symmetric"
)

// MatcherConfig holds configuration for the matcher.
type MatcherConfig struct {
	Policy       MatchPolicy
	AnchorSource string // required by PolicyAnchorSource
}

// Matcher partitions a flat collection of listings into cross-source match
// groups using name similarity. It is a pure function of its input: no
// storage, no network, no hidden state.
type Matcher struct {
	policy       MatchPolicy
	anchorSource string
}

// NewMatcher creates a matcher with the given configuration. An unset policy
// defaults to symmetric clustering.
func NewMatcher(cfg MatcherConfig) *Matcher {
	policy := cfg.Policy
	if policy == "" {
		policy = PolicySymmetric
	}
	return &Matcher{policy: policy, anchorSource: cfg.AnchorSource}
}

// Match groups products whose names score at or above threshold. Input order
// is load-bearing: both policies scan in the order given and their greedy
// tie-breaks depend on it.
func (m *Matcher) Match(products []domain.Product, threshold float64) ([]domain.MatchGroup, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: threshold %v outside [0,1]", domain.ErrInvalidInput, threshold)
	}

	pool := collapseDuplicates(products)

	switch m.policy {
	case PolicyAnchorSource:
		if m.anchorSource == "" {
			return nil, fmt.Errorf("%w: anchor-source policy requires an anchor source", domain.ErrInvalidInput)
		}
		return matchAnchored(pool, m.anchorSource, threshold), nil
	case PolicySymmetric:
		return matchSymmetric(pool, threshold), nil
	default:
		return nil, fmt.Errorf("%w: unknown match policy %q", domain.ErrInvalidInput, m.policy)
	}
}

// collapseDuplicates folds records sharing a (source, externalId) key into
// one, so a listing is never counted twice inside a group. The later record
// supersedes the earlier one; the first-seen position is kept so iteration
// order stays stable.
func collapseDuplicates(products []domain.Product) []domain.Product {
	idx := make(map[string]int, len(products))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if i, ok := idx[p.Key()]; ok {
			out[i] = p
			continue
		}
		idx[p.Key()] = len(out)
		out = append(out, p)
	}
	return out
}

// matchAnchored implements the anchor-source policy. Each anchor listing is
// compared independently against every other source's listings; per source,
// the best candidate wins its slot. Strict score improvement keeps the
// first-seen candidate on ties. Non-anchor listings that never win a slot are
// dropped from the output; a listing may win slots in more than one anchor
// group because the scans are independent.
func matchAnchored(pool []domain.Product, anchorSource string, threshold float64) []domain.MatchGroup {
	bySource := make(map[string][]domain.Product)
	var sourceOrder []string
	for _, p := range pool {
		if _, ok := bySource[p.Source]; !ok {
			sourceOrder = append(sourceOrder, p.Source)
		}
		bySource[p.Source] = append(bySource[p.Source], p)
	}

	anchors := bySource[anchorSource]
	groups := make([]domain.MatchGroup, 0, len(anchors))
	for _, anchor := range anchors {
		group := domain.MatchGroup{Anchor: anchor}
		for _, src := range sourceOrder {
			if src == anchorSource {
				continue
			}
			best := -1
			bestScore := 0.0
			for i, cand := range bySource[src] {
				score := similarity(anchor.Name, cand.Name)
				if score > bestScore && score >= threshold {
					bestScore = score
					best = i
				}
			}
			if best >= 0 {
				group.Matches = append(group.Matches, bySource[src][best])
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// matchSymmetric implements the symmetric-clustering policy. Every listing
// joins at most one group; similarity is always measured against the seed,
// not against previously absorbed members.
func matchSymmetric(pool []domain.Product, threshold float64) []domain.MatchGroup {
	grouped := make([]bool, len(pool))
	var groups []domain.MatchGroup

	for i, seed := range pool {
		if grouped[i] {
			continue
		}
		grouped[i] = true

		group := domain.MatchGroup{Anchor: seed}
		sources := map[string]bool{seed.Source: true}

		for j := i + 1; j < len(pool); j++ {
			if grouped[j] || sources[pool[j].Source] {
				continue
			}
			if similarity(seed.Name, pool[j].Name) >= threshold {
				group.Matches = append(group.Matches, pool[j])
				sources[pool[j].Source] = true
				grouped[j] = true
			}
		}
		groups = append(groups, group)
	}
	return groups
}
