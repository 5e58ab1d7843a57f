package catalog

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// ParseQuery builds a Filter from URL query parameters. Multi-valued parameters
// may be repeated or comma separated. Only malformed numbers are rejected.
func ParseQuery(q url.Values) (Filter, error) {
	f := Filter{
		SortBy:        ParseSortBy(q.Get("sortBy")),
		Categories:    splitValues(q["category"]),
		Colors:        splitValues(q["color"]),
		Sizes:         splitValues(q["size"]),
		ClothingTypes: splitValues(q["clothingType"]),
		Collections:   splitValues(q["collection"]),
	}

	minPrice, hasMin, err := parseInt(q, "minPrice")
	if err != nil {
		return Filter{}, err
	}
	maxPrice, hasMax, err := parseInt(q, "maxPrice")
	if err != nil {
		return Filter{}, err
	}
	if hasMin || hasMax {
		r := PriceRange{Min: 0, Max: math.MaxInt64}
		if hasMin {
			r.Min = minPrice
		}
		if hasMax {
			r.Max = maxPrice
		}
		f.Price = &r
	}

	if raw := strings.TrimSpace(q.Get("minRating")); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(rating) {
			return Filter{}, fmt.Errorf("invalid minRating %q", raw)
		}
		f.MinRating = rating
	}

	return f, nil
}

func parseInt(q url.Values, key string) (int64, bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, true, nil
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
