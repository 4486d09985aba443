package github

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// ErrMissingField is wrapped by every MissingFieldError.
var ErrMissingField = errors.New("required field missing")

// MissingFieldError reports a key that is absent from a response node.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Path)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

func missing(format string, args ...any) error {
	return &MissingFieldError{Path: fmt.Sprintf(format, args...)}
}

// Organization extracts the organization record.
func (r *Response) Organization() (org Organization, err error) {
	var node = r.organization()
	if node == nil {
		err = missing("data.organization")
		return
	}
	if !node.ID.Present {
		err = missing("data.organization.id")
		return
	}
	if !node.Login.Present {
		err = missing("data.organization.login")
		return
	}
	org = Organization{ID: node.ID.Value, Login: node.Login.Value}
	return
}

// Teams extracts one record per team node, sorted by id.
func (r *Response) Teams() (teams []Team, err error) {
	var org Organization
	var nodes []TeamNode
	if org, nodes, err = r.teamNodes(); err != nil {
		return
	}
	teams = make([]Team, 0, len(nodes))
	for i, node := range nodes {
		switch {
		case !node.ID.Present:
			err = missing("teams.nodes[%d].id", i)
		case !node.Name.Present:
			err = missing("teams.nodes[%d].name", i)
		case !node.Slug.Present:
			err = missing("teams.nodes[%d].slug", i)
		}
		if err != nil {
			return nil, err
		}
		teams = append(teams, Team{
			ID:    node.ID.Value,
			OrgID: org.ID,
			Name:  node.Name.Value,
			Slug:  node.Slug.Value,
		})
	}
	sort.SliceStable(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return
}

// Users extracts one record per team member edge, sorted by id. A user who is a
// member of several teams is listed once per team.
func (r *Response) Users() (users []User, err error) {
	users = []User{}
	if err = r.eachMember(func(_ TeamNode, m MemberNode, path string) error {
		switch {
		case !m.Login.Present:
			return missing("%s.login", path)
		case !m.Name.Present:
			return missing("%s.name", path)
		case !m.Email.Present:
			return missing("%s.email", path)
		}
		users = append(users, User{
			ID:    m.ID.Value,
			Login: m.Login.Value,
			Name:  m.Name.Value,
			Email: m.Email.Value,
		})
		return nil
	}); err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return
}

// Memberships extracts one record per team member edge with the composite id
// [team_id, user_id], sorted by that id.
func (r *Response) Memberships() (memberships []Membership, err error) {
	memberships = []Membership{}
	if err = r.eachMember(func(t TeamNode, m MemberNode, _ string) error {
		memberships = append(memberships, NewMembership(t.ID.Value, m.ID.Value))
		return nil
	}); err != nil {
		return nil, err
	}
	sort.SliceStable(memberships, func(i, j int) bool { return memberships[i].ID.Less(memberships[j].ID) })
	return
}

func (r *Response) teamNodes() (org Organization, nodes []TeamNode, err error) {
	if org, err = r.Organization(); err != nil {
		return
	}
	var teams = r.teams()
	if teams == nil {
		err = missing("data.organization.teams")
		return
	}
	if teams.Nodes == nil {
		err = missing("data.organization.teams.nodes")
		return
	}
	nodes = teams.Nodes
	return
}

// eachMember calls fn for every (team, member) pair after checking the ids that
// link them.
func (r *Response) eachMember(fn func(t TeamNode, m MemberNode, path string) error) (err error) {
	var nodes []TeamNode
	if _, nodes, err = r.teamNodes(); err != nil {
		return
	}
	for i, t := range nodes {
		if !t.ID.Present {
			return missing("teams.nodes[%d].id", i)
		}
		if t.Members == nil {
			return missing("teams.nodes[%d].members", i)
		}
		if t.Members.Nodes == nil {
			return missing("teams.nodes[%d].members.nodes", i)
		}
		for j, m := range t.Members.Nodes {
			var path = fmt.Sprintf("teams.nodes[%d].members.nodes[%d]", i, j)
			if !m.ID.Present {
				return missing("%s.id", path)
			}
			if err = fn(t, m, path); err != nil {
				return
			}
		}
	}
	return
}
