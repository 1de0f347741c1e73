package guests

import (
	"sort"
	"strings"
)

// ImportEntry is one row of a guest list source file.
type ImportEntry struct {
	Name        string `json:"name"`
	FamilyGroup string `json:"family_group"`
	Side        string `json:"side"`
}

type ImportSummary struct {
	TotalGuests  int          `json:"total_guests"`
	FamilyGroups int          `json:"family_groups"`
	SoloGroups   int          `json:"solo_groups"`
	BySide       map[Side]int `json:"by_side"`
}

type FamilyGroupReport struct {
	Key     string   `json:"family_group"`
	Side    Side     `json:"side"`
	Members []string `json:"members"`
}

// DuplicateName lists guests whose names normalise to the same key; lookups
// for that key always land on the first of them.
type DuplicateName struct {
	NormalizedName string   `json:"normalized_name"`
	GuestIDs       []string `json:"guest_ids"`
	Names          []string `json:"names"`
}

type GroupingReport struct {
	Summary    ImportSummary       `json:"summary"`
	Groups     []FamilyGroupReport `json:"groups"`
	Duplicates []DuplicateName     `json:"duplicates"`
}

// BuildDirectory turns import rows into fresh guest rows in source order.
// A blank side means both; a blank family group makes the guest a solo group
// keyed by their normalised name.
func BuildDirectory(entries []ImportEntry, newID func() string) ([]Guest, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyDirectory
	}

	directory := make([]Guest, 0, len(entries))
	for i, entry := range entries {
		name := strings.Join(strings.Fields(entry.Name), " ")
		normalized := Normalize(name)
		if normalized == "" {
			return nil, &EntryError{Row: i + 1, Name: entry.Name, Err: ErrEmptyName}
		}
		side, err := ParseSide(entry.Side)
		if err != nil {
			return nil, &EntryError{Row: i + 1, Name: entry.Name, Err: err}
		}
		group := strings.TrimSpace(entry.FamilyGroup)
		if group == "" {
			group = strings.ReplaceAll(normalized, " ", "_")
		}

		directory = append(directory, Guest{
			ID:             newID(),
			Position:       i,
			Name:           name,
			NormalizedName: normalized,
			FamilyGroup:    group,
			Side:           side,
		})
	}
	return directory, nil
}

func Summarize(directory []Guest) ImportSummary {
	summary := ImportSummary{
		TotalGuests: len(directory),
		BySide:      map[Side]int{SideBride: 0, SideGroom: 0, SideBoth: 0},
	}
	sizes := map[string]int{}
	for _, g := range directory {
		summary.BySide[g.Side]++
		sizes[g.FamilyGroup]++
	}
	summary.FamilyGroups = len(sizes)
	for _, n := range sizes {
		if n == 1 {
			summary.SoloGroups++
		}
	}
	return summary
}

// BuildReport groups the directory by family and flags names that collide
// once normalised. Groups are sorted by side, then key.
func BuildReport(directory []Guest) GroupingReport {
	report := GroupingReport{Summary: Summarize(directory)}

	index := map[string]int{}
	byKey := map[string][]Guest{}
	var keyOrder []string
	for _, g := range directory {
		i, ok := index[g.FamilyGroup]
		if !ok {
			i = len(report.Groups)
			index[g.FamilyGroup] = i
			report.Groups = append(report.Groups, FamilyGroupReport{Key: g.FamilyGroup, Side: g.Side})
		}
		report.Groups[i].Members = append(report.Groups[i].Members, g.Name)

		key := Normalize(g.Name)
		if _, ok := byKey[key]; !ok {
			keyOrder = append(keyOrder, key)
		}
		byKey[key] = append(byKey[key], g)
	}

	sort.SliceStable(report.Groups, func(i, j int) bool {
		if report.Groups[i].Side != report.Groups[j].Side {
			return report.Groups[i].Side < report.Groups[j].Side
		}
		return report.Groups[i].Key < report.Groups[j].Key
	})

	for _, key := range keyOrder {
		matches := byKey[key]
		if len(matches) < 2 {
			continue
		}
		dup := DuplicateName{NormalizedName: key}
		for _, g := range matches {
			dup.GuestIDs = append(dup.GuestIDs, g.ID)
			dup.Names = append(dup.Names, g.Name)
		}
		report.Duplicates = append(report.Duplicates, dup)
	}
	return report
}

// SortForAdmin orders guests by family group, then name.
func SortForAdmin(directory []Guest) []Guest {
	out := make([]Guest, len(directory))
	copy(out, directory)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FamilyGroup != out[j].FamilyGroup {
			return out[i].FamilyGroup < out[j].FamilyGroup
		}
		return out[i].Name < out[j].Name
	})
	return out
}
