package guests

import (
	"strings"
	"time"
)

type SkipReason string

const (
	SkipOtherFamily SkipReason = "other_family"
	SkipUnknown     SkipReason = "unknown_guest"
	SkipSubmitter   SkipReason = "submitter"
	SkipDuplicate   SkipReason = "duplicate"
	SkipInvalid     SkipReason = "invalid"
)

// Submission is one RSVP request. Nil Dietary or Message keeps the stored
// text; a pointer to "" clears it.
type Submission struct {
	GuestID    string
	Response   Response
	GuestCount int
	Dietary    *string
	Message    *string
	Email      string
	Family     []FamilyResponse
}

type FamilyResponse struct {
	GuestID  string
	Response Response
	Dietary  *string
	Message  *string
	Email    string
}

type Skip struct {
	GuestID string
	Reason  SkipReason
}

// Outcome lists the rows to persist, submitter first, plus the linked entries
// that were dropped.
type Outcome struct {
	Written []Guest
	Emails  map[string]string
	Skipped []Skip
}

type Ledger struct {
	maxGuestCount int
}

func NewLedger(maxGuestCount int) *Ledger {
	if maxGuestCount < 1 {
		maxGuestCount = 1
	}
	return &Ledger{maxGuestCount: maxGuestCount}
}

// Submit computes the rows a submission writes. The directory is not
// modified; Written holds updated copies.
func (l *Ledger) Submit(directory []Guest, sub Submission, now time.Time) (Outcome, error) {
	if !sub.Response.Valid() {
		if sub.Response == "" {
			return Outcome{}, ErrResponseRequired
		}
		return Outcome{}, ErrInvalidResponse
	}

	byID := make(map[string]int, len(directory))
	for i, g := range directory {
		if _, seen := byID[g.ID]; !seen {
			byID[g.ID] = i
		}
	}

	idx, ok := byID[sub.GuestID]
	if !ok {
		return Outcome{}, ErrGuestNotFound
	}
	submitter := directory[idx]
	by := submitter.Name

	outcome := Outcome{Emails: map[string]string{}}
	outcome.Written = append(outcome.Written, applyRSVP(submitter, sub.Response, l.clampCount(sub.GuestCount), sub.Dietary, sub.Message, by, now))
	if email := strings.TrimSpace(sub.Email); email != "" {
		outcome.Emails[submitter.ID] = email
	}

	seen := map[string]struct{}{submitter.ID: {}}
	for _, entry := range sub.Family {
		id := strings.TrimSpace(entry.GuestID)
		switch {
		case id == "" || !entry.Response.Valid():
			outcome.Skipped = append(outcome.Skipped, Skip{GuestID: id, Reason: SkipInvalid})
			continue
		case id == submitter.ID:
			outcome.Skipped = append(outcome.Skipped, Skip{GuestID: id, Reason: SkipSubmitter})
			continue
		}
		if _, dup := seen[id]; dup {
			outcome.Skipped = append(outcome.Skipped, Skip{GuestID: id, Reason: SkipDuplicate})
			continue
		}
		targetIdx, ok := byID[id]
		if !ok {
			outcome.Skipped = append(outcome.Skipped, Skip{GuestID: id, Reason: SkipUnknown})
			continue
		}
		target := directory[targetIdx]
		if target.FamilyGroup != submitter.FamilyGroup {
			outcome.Skipped = append(outcome.Skipped, Skip{GuestID: id, Reason: SkipOtherFamily})
			continue
		}

		seen[id] = struct{}{}
		outcome.Written = append(outcome.Written, applyRSVP(target, entry.Response, 1, entry.Dietary, entry.Message, by, now))
		if email := strings.TrimSpace(entry.Email); email != "" {
			outcome.Emails[target.ID] = email
		}
	}

	return outcome, nil
}

func (l *Ledger) clampCount(count int) int {
	if count < 1 {
		return 1
	}
	if count > l.maxGuestCount {
		return l.maxGuestCount
	}
	return count
}

func applyRSVP(g Guest, response Response, count int, dietary, message *string, by string, now time.Time) Guest {
	out := g.Clone()
	out.HasRSVPed = true
	out.RSVPResponse = &response
	out.RSVPGuestCount = count
	if dietary != nil {
		out.RSVPDietary = optionalText(*dietary)
	}
	if message != nil {
		out.RSVPMessage = optionalText(*message)
	}
	date := now.UTC()
	out.RSVPDate = &date
	out.RSVPBy = &by
	return out
}

// optionalText trims value; blank becomes nil so cleared fields store NULL.
func optionalText(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
