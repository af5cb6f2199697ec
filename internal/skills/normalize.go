package skills

import "strings"

// Normalize lowercases skills and adds the canonical form of each synonym.
// The original spelling is kept alongside its canonical form.
func Normalize(skills []string) []string {
	return normalizeSet(skills).sorted()
}

// Infer normalizes skills and adds the prerequisites implied by each of them.
// Only the normalized explicit skills drive inference; implied skills are not expanded again.
func Infer(skills []string) []string {
	return inferSet(skills).sorted()
}

func normalizeSet(skills []string) set {
	out := make(set, len(skills)*2)
	for _, skill := range skills {
		lower := strings.ToLower(strings.TrimSpace(skill))
		if lower == "" {
			continue
		}
		if canonical, ok := synonyms[lower]; ok {
			out[canonical] = struct{}{}
		}
		out[lower] = struct{}{}
	}
	return out
}

func inferSet(skills []string) set {
	explicit := normalizeSet(skills)
	out := make(set, len(explicit)*2)
	for skill := range explicit {
		out[skill] = struct{}{}
	}
	for skill := range explicit {
		for _, implied := range relationships[skill] {
			out[implied] = struct{}{}
		}
	}
	return out
}
