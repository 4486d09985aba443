package github

import (
	"keepersecurity.com/ksm-github-sync/storage"
)

type Organization struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

type User struct {
	ID    int64   `json:"id"`
	Login string  `json:"login"`
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

type Team struct {
	ID    int64  `json:"id"`
	OrgID int64  `json:"org_id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
}

// MembershipID is the composite [team_id, user_id] key of a Membership.
type MembershipID [2]int64

// Membership links a user to a team.
type Membership struct {
	ID     MembershipID `json:"id"`
	TeamID int64        `json:"team_id"`
	UserID int64        `json:"user_id"`
}

func NewMembership(teamID, userID int64) Membership {
	return Membership{
		ID:     MembershipID{teamID, userID},
		TeamID: teamID,
		UserID: userID,
	}
}

func (o Organization) Record() storage.Record {
	return storage.Record{"id": o.ID, "login": o.Login}
}

func (u User) Record() storage.Record {
	var name any
	if u.Name != nil {
		name = *u.Name
	}
	return storage.Record{"id": u.ID, "login": u.Login, "name": name, "email": u.Email}
}

func (t Team) Record() storage.Record {
	return storage.Record{"id": t.ID, "org_id": t.OrgID, "name": t.Name, "slug": t.Slug}
}

func (m Membership) Record() storage.Record {
	return storage.Record{"id": []int64{m.ID[0], m.ID[1]}, "team_id": m.TeamID, "user_id": m.UserID}
}

// Less orders membership ids by team id, then user id.
func (id MembershipID) Less(other MembershipID) bool {
	if id[0] != other[0] {
		return id[0] < other[0]
	}
	return id[1] < other[1]
}
