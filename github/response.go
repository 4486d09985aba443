package github

import (
	"encoding/json"
)

// Field is a response value that remembers whether its key was present. A present
// key with a JSON null value counts as present.
type Field[T any] struct {
	Value   T
	Present bool
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// Set returns a present field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{Value: v, Present: true}
}

// Response is the decoded body of one organization query, or the aggregate of all
// pages after Fetch merged them.
type Response struct {
	Data   *Data          `json:"data,omitempty"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

type Data struct {
	Organization *OrganizationNode `json:"organization"`
}

type GraphQLError struct {
	Type    string   `json:"type,omitempty"`
	Message string   `json:"message"`
	Path    []any    `json:"path,omitempty"`
}

type OrganizationNode struct {
	ID    Field[int64]    `json:"id"`
	Login Field[string]   `json:"login"`
	Teams *TeamConnection `json:"teams"`
}

type TeamConnection struct {
	PageInfo *PageInfo `json:"pageInfo"`
	Nodes    []TeamNode `json:"nodes"`
}

type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type TeamNode struct {
	ID      Field[int64]      `json:"id"`
	Name    Field[string]     `json:"name"`
	Slug    Field[string]     `json:"slug"`
	Members *MemberConnection `json:"members"`
}

type MemberConnection struct {
	Nodes []MemberNode `json:"nodes"`
}

type MemberNode struct {
	ID    Field[int64]   `json:"id"`
	Login Field[string]  `json:"login"`
	Name  Field[*string] `json:"name"`
	Email Field[string]  `json:"email"`
}

func (r *Response) organization() *OrganizationNode {
	if r == nil || r.Data == nil {
		return nil
	}
	return r.Data.Organization
}

func (r *Response) teams() *TeamConnection {
	if org := r.organization(); org != nil {
		return org.Teams
	}
	return nil
}

// pageInfo returns nil when the response carries no pagination info, which is the
// case for an empty page.
func (r *Response) pageInfo() *PageInfo {
	if teams := r.teams(); teams != nil {
		return teams.PageInfo
	}
	return nil
}

// TeamNodes returns the team nodes of the response, nil when absent.
func (r *Response) TeamNodes() []TeamNode {
	if teams := r.teams(); teams != nil {
		return teams.Nodes
	}
	return nil
}
