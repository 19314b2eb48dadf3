package search

import (
	"sort"
	"strings"

	"github.com/OmGaler/kp-pesach-orders/models"
)

type scoredProduct struct {
	product models.Product
	score   int
}

// Search folds the raw query, scores every index entry and returns the
// matching products grouped by category. Categories come back sorted by
// name; within a category products sort by score descending, then by
// their original catalog position. A blank query returns nothing — the
// browse view handles "show everything".
func Search(index *Index, rawQuery string) []models.Category {
	query := Fold(rawQuery)
	if query == "" {
		return []models.Category{}
	}

	byCategory := map[string][]scoredProduct{}
	for _, entry := range index.Entries {
		score := scoreEntry(entry, query)
		if score <= 0 {
			continue
		}
		byCategory[entry.CategoryName] = append(byCategory[entry.CategoryName], scoredProduct{
			product: entry.Product,
			score:   score,
		})
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]models.Category, 0, len(names))
	for _, name := range names {
		scored := byCategory[name]
		sort.SliceStable(scored, func(i, j int) bool {
			if scored[i].score != scored[j].score {
				return scored[i].score > scored[j].score
			}
			return scored[i].product.SortIndex < scored[j].product.SortIndex
		})
		products := make([]models.Product, 0, len(scored))
		for _, item := range scored {
			products = append(products, item.product)
		}
		results = append(results, models.Category{Name: name, Products: products})
	}
	return results
}

// scoreEntry is a tuned heuristic, not exact retrieval. The weights
// reward, in order: the whole query appearing verbatim (early matches
// more), skeleton containment bridging vowel variation, then per-token
// matches with an edit-distance fallback for typos the folding doesn't
// normalize away.
func scoreEntry(entry Entry, query string) int {
	queryTokens := strings.Fields(query)
	if len(queryTokens) == 0 {
		return 0
	}

	querySkeleton := Skeleton(query)
	score := 0

	if idx := strings.Index(entry.Haystack, query); idx >= 0 {
		penalty := idx
		if penalty > 100 {
			penalty = 100
		}
		score += 200 - penalty
	}

	if len(querySkeleton) >= 3 {
		for _, skeleton := range entry.TokenSkeletons {
			if strings.Contains(skeleton, querySkeleton) {
				score += 65
				break
			}
		}
	}

	for _, queryToken := range queryTokens {
		best := 0
		for _, token := range entry.Tokens {
			switch {
			case token == queryToken:
				best = max(best, 80)
			case strings.HasPrefix(token, queryToken):
				best = max(best, 55)
			case strings.Contains(token, queryToken):
				best = max(best, 38)
			default:
				// Tolerance grows with token length: 1 edit for short
				// tokens, len/3 for longer ones.
				distance := levenshtein(queryToken, token)
				limit := len(queryToken) / 3
				if limit < 1 {
					limit = 1
				}
				if distance <= limit {
					best = max(best, 32-distance*8)
				}
			}
		}
		score += best
	}

	return score
}

// levenshtein is the classic two-row edit distance. Folded tokens are
// ASCII, so byte indexing is safe.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		copy(prev, curr)
	}

	return prev[len(b)]
}
