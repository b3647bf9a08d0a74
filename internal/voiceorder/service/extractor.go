package service

import (
	"iter"
	"regexp"
	"strings"

	"saajhamandi/internal/catalog"
	"saajhamandi/internal/domain"
)

// mentionPattern matches "<number><unit?><of?><word>", e.g. "2kg tomatoes",
// "1 liter of milk" or "6 eggs". Longer unit spellings come first so "liters"
// is not read as "liter" followed by the word "s".
var mentionPattern = regexp.MustCompile(
	`(?i)(\d+(?:\.\d+)?)\s*(?:(kg|g|ml|liters|liter|loaves|loaf|pieces|piece|dozen|pack|cups|cup)\b)?\s*(?:of\s+)?([a-z]+)`,
)

type Extractor struct {
	catalog *catalog.Catalog
}

func NewExtractor(c *catalog.Catalog) *Extractor {
	return &Extractor{catalog: c}
}

// Extract scans utterance for product mentions. Quantified mentions come
// first in order of appearance, followed by bare product names in catalog
// order. A product is reported at most once; the first occurrence wins.
//
// The scan is lazy: stopping the iteration early stops the scan.
func (e *Extractor) Extract(utterance string) iter.Seq[domain.Mention] {
	return func(yield func(domain.Mention) bool) {
		seen := make(map[int]struct{})

		for pos := 0; pos < len(utterance); {
			loc := mentionPattern.FindStringSubmatchIndex(utterance[pos:])
			if loc == nil {
				break
			}

			number := utterance[pos+loc[2] : pos+loc[3]]
			unit := ""
			if loc[4] >= 0 {
				unit = strings.ToLower(utterance[pos+loc[4] : pos+loc[5]])
			}
			word := strings.ToLower(utterance[pos+loc[6] : pos+loc[7]])
			pos += loc[1]

			entry, ok := e.catalog.Lookup(word)
			if !ok {
				continue
			}
			if _, dup := seen[entry.ID]; dup {
				continue
			}
			seen[entry.ID] = struct{}{}

			quantity := number
			if unit != "" {
				quantity = number + " " + unit
			}
			if !yield(domain.Mention{RawName: word, RawQuantity: quantity}) {
				return
			}
		}

		lower := strings.ToLower(utterance)
		for _, term := range e.catalog.Vocabulary() {
			if _, dup := seen[term.Entry.ID]; dup {
				continue
			}
			if !strings.Contains(lower, term.Text) {
				continue
			}
			seen[term.Entry.ID] = struct{}{}
			if !yield(domain.Mention{RawName: term.Text}) {
				return
			}
		}
	}
}

// ExtractAll collects Extract into a slice.
func (e *Extractor) ExtractAll(utterance string) []domain.Mention {
	var out []domain.Mention
	for m := range e.Extract(utterance) {
		out = append(out, m)
	}
	return out
}
