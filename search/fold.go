package search

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldRule rewrites every occurrence of any of its variants to one
// canonical spelling. The variants act like a regex alternation: a
// single left-to-right pass, so a replacement never re-triggers the
// rule that produced it.
type foldRule struct {
	variants []string
	to       string
}

// foldRules collapses common transliteration variants of Hebrew and
// Yiddish product names ("Charoses"/"kharoses", "Chrayne"/"chra") into
// one spelling. The rules run over the whole string in this order.
var foldRules = []foldRule{
	{[]string{"ch", "kh"}, "h"},
	{[]string{"ph"}, "f"},
	{[]string{"tz", "ts"}, "z"},
	{[]string{"aa", "ah"}, "a"},
	{[]string{"ee", "ei", "ey"}, "i"},
	{[]string{"oo", "ou"}, "u"},
	{[]string{"oi", "oy"}, "i"},
	{[]string{"w"}, "v"},
	{[]string{"q"}, "k"},
}

var (
	stripMarks    = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	quoteChars    = strings.NewReplacer("'", "", "’", "", "`", "", `"`, "")
	vowelChars    = strings.NewReplacer("a", "", "e", "", "i", "", "o", "", "u", "")
	whitespaceRun = regexp.MustCompile(`\s+`)
)

func normalizeWhitespace(value string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(value, " "))
}

// Fold normalizes text so inconsistently transliterated spellings
// compare equal. It is applied identically to indexed product text and
// to incoming queries; that symmetry is what makes matching work.
func Fold(value string) string {
	normalized, _, err := transform.String(stripMarks, value)
	if err != nil {
		normalized = value
	}
	normalized = strings.ToLower(normalized)
	normalized = quoteChars.Replace(normalized)
	normalized = strings.ReplaceAll(normalized, "&", " and ")

	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	folded := b.String()
	for _, rule := range foldRules {
		folded = rule.apply(folded)
	}
	return normalizeWhitespace(folded)
}

// apply assumes ASCII input, which holds after the alphanumeric filter
// in Fold.
func (r foldRule) apply(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		matched := false
		for _, variant := range r.variants {
			if strings.HasPrefix(s[i:], variant) {
				b.WriteString(r.to)
				i += len(variant)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

// Skeleton strips vowels and spaces from folded text, for loose
// containment checks that ignore vowel variation.
func Skeleton(value string) string {
	return strings.ReplaceAll(vowelChars.Replace(value), " ", "")
}
