package catalog

import (
	"strings"

	"recrent-shop/internal/domain"
)

// SizeSeparator splits a size token from its optional category restriction,
// as in "L:clothing".
const SizeSeparator = ":"

type sizeToken struct {
	size     string
	category string
}

// parseSizeTokens returns nil when the tokens impose no constraint.
func parseSizeTokens(values []string) []sizeToken {
	var tokens []sizeToken
	for _, v := range values {
		v = normalize(v)
		if v == "" {
			continue
		}
		if v == "all" {
			return nil
		}
		size, category, _ := strings.Cut(v, SizeSeparator)
		tokens = append(tokens, sizeToken{
			size:     strings.TrimSpace(size),
			category: strings.TrimSpace(category),
		})
	}
	return tokens
}

func matchesSize(p *domain.Product, tokens []sizeToken) bool {
	sizes := p.Sizes()
	for _, t := range tokens {
		if t.category != "" && t.category != normalize(string(p.Category)) {
			continue
		}
		for _, s := range sizes {
			if normalize(s) == t.size {
				return true
			}
		}
	}
	return false
}

// SizeToken formats a size restricted to a category, e.g. SizeToken("L", "clothing") == "L:clothing".
func SizeToken(size string, category domain.Category) string {
	return size + SizeSeparator + string(category)
}
