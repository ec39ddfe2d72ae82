// This file merges sprinkler records into the playground dataset by name.
// Names in the two sources rarely match exactly, so matching runs in two
// passes: exact match after normalization, then fuzzy matching gated on
// shared words to keep near-miss names ("Dan Ross" vs "Diana Ross") apart.
package dataset

import (
	"regexp"
	"strings"

	"github.com/fieldday-labs/swingset/pkg/types"
)

// FuzzyThreshold is the minimum similarity score for a fuzzy name match.
const FuzzyThreshold = 0.8

// Suffixes stripped during name normalization, longest first.
var nameSuffixes = []string{
	" park playground",
	" playground",
	" playgrnd",
	" plgrnd",
	" tot lot",
	" plgd",
	" park",
}

var (
	nonWordRE    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// normalizeName lowercases a playground name, strips common suffixes and
// punctuation, and collapses whitespace.
func normalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, suffix := range nameSuffixes {
		if strings.HasSuffix(n, suffix) {
			n = strings.TrimSpace(strings.TrimSuffix(n, suffix))
		}
	}
	n = nonWordRE.ReplaceAllString(n, " ")
	n = whitespaceRE.ReplaceAllString(n, " ")
	return strings.TrimSpace(n)
}

// sharedWords counts words common to two normalized names.
func sharedWords(a, b string) int {
	words := make(map[string]bool)
	for _, w := range strings.Fields(a) {
		words[w] = true
	}
	count := 0
	for _, w := range strings.Fields(b) {
		if words[w] {
			count++
			words[w] = false
		}
	}
	return count
}

// similarityRatio computes 2*LCS/(len(a)+len(b)) over runes, the classic
// sequence-similarity ratio in [0, 1].
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}

// similarityScore scores two raw playground names. Names sharing no words
// score 0 regardless of character similarity.
func similarityScore(name1, name2 string) float64 {
	n1, n2 := normalizeName(name1), normalizeName(name2)
	if n1 == "" || n2 == "" {
		return 0
	}
	if n1 == n2 {
		return 1
	}
	if sharedWords(n1, n2) == 0 {
		return 0
	}
	return similarityRatio(n1, n2)
}

// findBestMatch returns the sprinkler name best matching a playground name,
// or "" when nothing clears the threshold. Exact normalized matches win
// outright; fuzzy candidates additionally need two shared words unless the
// score is nearly exact.
func findBestMatch(playgroundName string, sprinklerNames []string, threshold float64) (string, float64) {
	normPlayground := normalizeName(playgroundName)
	for _, name := range sprinklerNames {
		if normPlayground != "" && normalizeName(name) == normPlayground {
			return name, 1
		}
	}

	best := ""
	bestScore := 0.0
	for _, name := range sprinklerNames {
		score := similarityScore(playgroundName, name)
		if score <= bestScore || score < threshold {
			continue
		}
		if sharedWords(normPlayground, normalizeName(name)) >= 2 || score > 0.99 {
			bestScore = score
			best = name
		}
	}
	return best, bestScore
}

// MergeStats reports how a merge went.
type MergeStats struct {
	Total        int
	ExactMatches int
	FuzzyMatches int
}

// Matched returns the number of playgrounds enriched with sprinkler data.
func (s MergeStats) Matched() int {
	return s.ExactMatches + s.FuzzyMatches
}

// MergeSprinklers enriches every playground record with the sprinkler flag
// and, where a sprinkler record matches by name, its status, system, and
// district. Unmatched playgrounds get an explicit false flag so the
// verification field is populated on every record.
func MergeSprinklers(playgrounds []types.SourcePlayground, sprinklers []SprinklerRecord) ([]types.SourcePlayground, MergeStats) {
	byName := make(map[string]SprinklerRecord, len(sprinklers))
	names := make([]string, 0, len(sprinklers))
	for _, s := range sprinklers {
		name := strings.TrimSpace(s.SubPropertyName)
		if name == "" {
			continue
		}
		if _, seen := byName[name]; !seen {
			names = append(names, name)
		}
		byName[name] = s
	}

	stats := MergeStats{Total: len(playgrounds)}
	merged := make([]types.SourcePlayground, len(playgrounds))
	for i, p := range playgrounds {
		enriched := p
		hasSprinkler := false
		enriched.HasSprinkler = &hasSprinkler
		enriched.SprinklerStatus = nil
		enriched.SprinklerSystem = nil
		enriched.SprinklerDistrict = nil

		name := strings.TrimSpace(p.Name)
		if name == "" {
			merged[i] = enriched
			continue
		}

		match := ""
		for _, candidate := range names {
			if strings.EqualFold(name, strings.TrimSpace(candidate)) {
				match = candidate
				break
			}
		}
		if match != "" {
			stats.ExactMatches++
		} else {
			match, _ = findBestMatch(name, names, FuzzyThreshold)
			if match != "" {
				stats.FuzzyMatches++
			}
		}

		if match != "" {
			s := byName[match]
			hasSprinkler = true
			enriched.SprinklerStatus = &s.Status
			enriched.SprinklerSystem = &s.System
			enriched.SprinklerDistrict = &s.District
		}
		merged[i] = enriched
	}
	return merged, stats
}
