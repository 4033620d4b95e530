// Package classifier labels an ad's condition from its title using phrase
// rules and a small sentiment lexicon.
package classifier

import (
	"strings"
	"sync"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
)

// Sentiment score bounds beyond which the score alone decides the label.
const (
	positiveScoreThreshold = 3
	negativeScoreThreshold = -3
	minKeywordRunes        = 3
)

// Classifier is safe for concurrent use.
type Classifier struct {
	// ahocorasick matchers keep per-match state, so calls are serialized.
	mu      sync.Mutex
	newer   *ahocorasick.Matcher
	defect  *ahocorasick.Matcher
	good    *ahocorasick.Matcher
	lexicon map[string]int
}

// New builds a Classifier with the built-in phrase sets.
func New() *Classifier {
	return &Classifier{
		newer:   ahocorasick.NewStringMatcher(padPhrases(newPhrases)),
		defect:  ahocorasick.NewStringMatcher(padPhrases(defectPhrases)),
		good:    ahocorasick.NewStringMatcher(padPhrases(goodPhrases)),
		lexicon: sentimentLexicon,
	}
}

// Classify scores text and picks a label. Explicit "new" phrasing wins over
// defect phrasing, which wins over good-condition phrasing or a score above
// +3; a score below -3 means defect and anything else is indefinite.
func (c *Classifier) Classify(text string) domain.Classification {
	normalized := normalize(text)
	score, keywords := c.score(normalized)
	padded := []byte(" " + normalized + " ")

	c.mu.Lock()
	hasNew := len(c.newer.Match(padded)) > 0
	hasDefect := len(c.defect.Match(padded)) > 0
	hasGood := len(c.good.Match(padded)) > 0
	c.mu.Unlock()

	var label string
	switch {
	case hasNew:
		label = domain.LabelNew
	case hasDefect:
		label = domain.LabelDefect
	case hasGood || score > positiveScoreThreshold:
		label = domain.LabelGood
	case score < negativeScoreThreshold:
		label = domain.LabelDefect
	default:
		label = domain.LabelIndefinite
	}

	return domain.Classification{SentimentScore: score, Label: label, Keywords: keywords}
}

func (c *Classifier) score(normalized string) (int, []string) {
	score := 0
	keywords := []string{}
	seen := make(map[string]struct{})
	for _, token := range strings.Fields(normalized) {
		weight, ok := c.lexicon[token]
		if !ok {
			continue
		}
		score += weight
		if _, dup := seen[token]; dup || len([]rune(token)) < minKeywordRunes {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
	}
	return score, keywords
}

// normalize lowercases, strips accents and collapses everything that is not a
// letter or digit into single spaces.
func normalize(text string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, text)
	if err != nil {
		folded = text
	}

	fields := strings.FieldsFunc(strings.ToLower(folded), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, " ")
}

// padPhrases surrounds phrases with spaces so they only match whole words of
// the padded, normalized text.
func padPhrases(phrases []string) []string {
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = " " + p + " "
	}
	return out
}
