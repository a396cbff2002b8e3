package export

import "strings"

// Filter selects activities by type, year, and gear tag. The three
// predicates are independent; an empty set means that dimension is not
// filtered. Match ANDs them with short-circuit evaluation.
type Filter struct {
	Types []string
	Years []string
	Gear  []string
}

// Match reports whether the activity passes all configured predicates.
// normalizedDate is the activity date re-rendered as 2006-01-02T150405;
// its first four bytes are the year.
func (f Filter) Match(a Activity, normalizedDate string) bool {
	return MatchesType(a.Type, f.Types) &&
		MatchesYear(normalizedDate, f.Years) &&
		MatchesGear(a.Gear, f.Gear)
}

// Empty reports whether no predicate is configured.
func (f Filter) Empty() bool {
	return len(f.Types) == 0 && len(f.Years) == 0 && len(f.Gear) == 0
}

// MatchesType reports whether activityType is in allowed, case-insensitively.
// An empty allowed set passes everything.
func MatchesType(activityType string, allowed []string) bool {
	return matchesAny(activityType, allowed)
}

// MatchesYear reports whether the year of normalizedDate is in allowed.
// An empty allowed set passes everything.
func MatchesYear(normalizedDate string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	if len(normalizedDate) < 4 {
		return false
	}
	return matchesAny(normalizedDate[:4], allowed)
}

// MatchesGear reports whether gear is in allowed, case-insensitively.
// An empty allowed set passes everything.
func MatchesGear(gear string, allowed []string) bool {
	return matchesAny(gear, allowed)
}

func matchesAny(value string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, value) {
			return true
		}
	}
	return false
}
