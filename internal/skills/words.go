package skills

import "strings"

// isWordByte reports whether b counts as part of a word for boundary checks.
func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// wordOccurrences returns the byte offsets of every whole-word occurrence of needle in haystack.
// A boundary is the start or end of the text or a non-word byte, so skills such as
// "c++" and "c#" match before punctuation or whitespace.
func wordOccurrences(haystack, needle string) []int {
	if needle == "" {
		return nil
	}
	var positions []int
	offset := 0
	for {
		idx := strings.Index(haystack[offset:], needle)
		if idx < 0 {
			return positions
		}
		start := offset + idx
		end := start + len(needle)
		beforeOK := start == 0 || !isWordByte(haystack[start-1]) || !isWordByte(needle[0])
		afterOK := end == len(haystack) || !isWordByte(haystack[end]) || !isWordByte(needle[len(needle)-1])
		if beforeOK && afterOK {
			positions = append(positions, start)
		}
		offset = start + 1
	}
}

// containsWord reports whether needle occurs in haystack as a whole word.
func containsWord(haystack, needle string) bool {
	return len(wordOccurrences(haystack, needle)) > 0
}

// CountOccurrences counts whole-word occurrences of skill in text, case-insensitively.
func CountOccurrences(text, skill string) int {
	return len(wordOccurrences(strings.ToLower(text), strings.ToLower(skill)))
}
