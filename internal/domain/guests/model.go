package guests

import (
	"strings"
	"time"
)

type Side string

const (
	SideBride Side = "bride"
	SideGroom Side = "groom"
	SideBoth  Side = "both"
)

func (s Side) Valid() bool {
	switch s {
	case SideBride, SideGroom, SideBoth:
		return true
	}
	return false
}

func ParseSide(raw string) (Side, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return SideBoth, nil
	}
	side := Side(value)
	if !side.Valid() {
		return "", ErrInvalidSide
	}
	return side, nil
}

type Response string

const (
	ResponseYes   Response = "yes"
	ResponseNo    Response = "no"
	ResponseMaybe Response = "maybe"
)

func (r Response) Valid() bool {
	switch r {
	case ResponseYes, ResponseNo, ResponseMaybe:
		return true
	}
	return false
}

func ParseResponse(raw string) (Response, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", ErrResponseRequired
	}
	response := Response(value)
	if !response.Valid() {
		return "", ErrInvalidResponse
	}
	return response, nil
}

// Guest is one invitee row. Name, NormalizedName, FamilyGroup and Side are
// fixed at import; only the RSVP columns change afterwards.
type Guest struct {
	ID             string     `gorm:"column:id;primaryKey" json:"id"`
	Position       int        `gorm:"column:position;not null" json:"position"`
	Name           string     `gorm:"column:name;not null" json:"name"`
	NormalizedName string     `gorm:"column:normalized_name;not null" json:"normalized_name"`
	FamilyGroup    string     `gorm:"column:family_group;not null;index" json:"family_group"`
	Side           Side       `gorm:"column:side;not null" json:"side"`
	HasRSVPed      bool       `gorm:"column:has_rsvped;not null" json:"has_rsvped"`
	RSVPResponse   *Response  `gorm:"column:rsvp_response" json:"rsvp_response"`
	RSVPGuestCount int        `gorm:"column:rsvp_guest_count;not null" json:"rsvp_guest_count"`
	RSVPDietary    *string    `gorm:"column:rsvp_dietary" json:"rsvp_dietary"`
	RSVPMessage    *string    `gorm:"column:rsvp_message" json:"rsvp_message"`
	RSVPDate       *time.Time `gorm:"column:rsvp_date" json:"rsvp_date"`
	RSVPBy         *string    `gorm:"column:rsvp_by" json:"rsvp_by"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Guest) TableName() string {
	return "guest_list"
}

func (g Guest) Attending() bool {
	return g.RSVPResponse != nil && *g.RSVPResponse == ResponseYes
}

// Clone copies g so pointer fields can be reassigned without touching the
// caller's snapshot.
func (g Guest) Clone() Guest {
	out := g
	out.RSVPResponse = clonePtr(g.RSVPResponse)
	out.RSVPDietary = clonePtr(g.RSVPDietary)
	out.RSVPMessage = clonePtr(g.RSVPMessage)
	out.RSVPDate = clonePtr(g.RSVPDate)
	out.RSVPBy = clonePtr(g.RSVPBy)
	return out
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

type Stats struct {
	TotalInvited   int `json:"total_invited"`
	TotalRSVPed    int `json:"total_rsvped"`
	Attending      int `json:"attending"`
	NotAttending   int `json:"not_attending"`
	Maybe          int `json:"maybe"`
	TotalAttending int `json:"total_attending"`
	Pending        int `json:"pending"`
	PercentRSVPed  int `json:"percent_rsvped"`
}
