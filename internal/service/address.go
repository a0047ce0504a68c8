package service

import (
	"regexp"
	"strings"
)

// Street-type keywords and administrative prefixes dropped during street
// tokenization. Building records store bare street names («Шевченка»),
// while citizens write «вул. Т. Шевченка, 12».
var streetStopwords = map[string]struct{}{
	"вул":      {},
	"вулиця":   {},
	"вулиці":   {},
	"просп":    {},
	"проспект": {},
	"пр-т":     {},
	"бул":      {},
	"бульвар":  {},
	"пл":       {},
	"площа":    {},
	"пров":     {},
	"провулок": {},
	"м":        {},
	"місто":    {},
	"обл":      {},
	"область":  {},
	"район":    {},
	"р-н":      {},
	"львів":    {},
	"львівська": {},
}

// houseNumberPattern matches a leading number token, keeping suffixed
// forms like «12А» or «45/2» intact.
var houseNumberPattern = regexp.MustCompile(`^(\d+[^\s,;]*)`)

var digitsPattern = regexp.MustCompile(`\d+`)

// ParseAddress extracts a street segment and a house number from a
// free-form citizen-supplied address. Best-effort: a known source of
// routing error, never of failure.
func ParseAddress(address string) (street, house string) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", ""
	}

	if idx := strings.Index(address, ","); idx >= 0 {
		street = strings.TrimSpace(address[:idx])
		rest := strings.TrimSpace(address[idx+1:])
		if fields := strings.Fields(rest); len(fields) > 0 {
			if m := houseNumberPattern.FindStringSubmatch(fields[0]); m != nil {
				house = m[1]
			} else {
				house = fields[0]
			}
		}
		return street, house
	}

	// No comma: peel a trailing number token off the street segment if any
	fields := strings.Fields(address)
	if len(fields) > 1 {
		last := fields[len(fields)-1]
		if m := houseNumberPattern.FindStringSubmatch(last); m != nil {
			return strings.Join(fields[:len(fields)-1], " "), m[1]
		}
	}
	return address, ""
}

// significantStreetTokens normalizes the street string and returns its
// tokens with city/region and street-type stopwords removed.
func significantStreetTokens(street string) []string {
	street = strings.ToLower(strings.TrimSpace(street))
	rawTokens := strings.FieldsFunc(street, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '\t'
	})

	var tokens []string
	for _, t := range rawTokens {
		if _, stop := streetStopwords[t]; stop {
			continue
		}
		// single-letter initials («Т.» in «вул. Т. Шевченка») carry no signal
		if len([]rune(t)) < 2 {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// equalHouseNumbers reports an exact match of normalized house numbers.
func equalHouseNumbers(a, b string) bool {
	na := strings.ToLower(strings.TrimSpace(a))
	nb := strings.ToLower(strings.TrimSpace(b))
	return na != "" && na == nb
}

// houseNumbersMatch compares normalized house numbers: exact first, then
// digit-only as a fallback for suffixed numbers like «12А».
func houseNumbersMatch(a, b string) bool {
	na := strings.ToLower(strings.TrimSpace(a))
	nb := strings.ToLower(strings.TrimSpace(b))
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}

	da := digitsPattern.FindString(na)
	db := digitsPattern.FindString(nb)
	return da != "" && da == db
}

// normalizeDistrictAdjective converts the masculine adjectival district
// ending to its feminine form («Залізничний» → «Залізнична»), because the
// service registry names district administrations in the feminine case
// while building records use the masculine.
func normalizeDistrictAdjective(district string) string {
	if strings.HasSuffix(district, "ий") {
		return strings.TrimSuffix(district, "ий") + "а"
	}
	return district
}
