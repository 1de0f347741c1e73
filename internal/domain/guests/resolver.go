package guests

import (
	"strings"
	"unicode/utf8"
)

const MinQueryLength = 2

type MatchPass string

const (
	PassExact   MatchPass = "exact"
	PassPartial MatchPass = "partial"
)

// Resolution is the outcome of matching a free-text name against the
// directory. Candidates counts every guest that satisfied the winning pass;
// more than one means the first in directory order was picked.
type Resolution struct {
	Guest            Guest
	FamilyMembers    []Guest
	CanRSVPForFamily bool
	Pass             MatchPass
	Candidates       int
}

func (r Resolution) Ambiguous() bool {
	return r.Candidates > 1
}

func ValidateQuery(query string) error {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < MinQueryLength {
		return ErrQueryTooShort
	}
	return nil
}

// Resolve finds the guest a visitor means by query, then gathers that
// guest's whole family group in directory order.
func Resolve(query string, directory []Guest) (Resolution, error) {
	if err := ValidateQuery(query); err != nil {
		return Resolution{}, err
	}

	key := Normalize(query)
	if key == "" {
		return Resolution{}, ErrNoMatch
	}

	pass := PassExact
	index, candidates := exactMatch(key, directory)
	if index < 0 {
		pass = PassPartial
		index, candidates = partialMatch(strings.Fields(key), directory)
	}
	if index < 0 {
		return Resolution{}, ErrNoMatch
	}

	guest := directory[index]
	members := FamilyOf(guest.FamilyGroup, directory)
	return Resolution{
		Guest:            guest,
		FamilyMembers:    members,
		CanRSVPForFamily: len(members) > 1,
		Pass:             pass,
		Candidates:       candidates,
	}, nil
}

// FamilyOf returns every guest sharing familyGroup, in directory order.
func FamilyOf(familyGroup string, directory []Guest) []Guest {
	var members []Guest
	for _, g := range directory {
		if g.FamilyGroup == familyGroup {
			members = append(members, g)
		}
	}
	return members
}

func exactMatch(key string, directory []Guest) (int, int) {
	first, count := -1, 0
	for i, g := range directory {
		if guestKey(g) != key {
			continue
		}
		if first < 0 {
			first = i
		}
		count++
	}
	return first, count
}

func partialMatch(tokens []string, directory []Guest) (int, int) {
	first, count := -1, 0
	for i, g := range directory {
		if !partialMatches(tokens, strings.Fields(guestKey(g))) {
			continue
		}
		if first < 0 {
			first = i
		}
		count++
	}
	return first, count
}

func partialMatches(query, name []string) bool {
	if len(query) == 0 || len(name) == 0 {
		return false
	}
	if len(query) == 1 {
		for _, token := range name {
			if token == query[0] {
				return true
			}
		}
		return false
	}
	return name[0] == query[0] && strings.HasPrefix(name[len(name)-1], query[len(query)-1])
}

// guestKey always recomputes from Name; the stored NormalizedName may come
// from an older import.
func guestKey(g Guest) string {
	return Normalize(g.Name)
}
