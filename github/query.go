package github

// organizationQuery lists the teams of an organization with their members, one page
// of teams at a time.
const organizationQuery = `query ($first: Int, $after: String, $org: String!) {
  organization(login: $org) {
    id: databaseId
    login
    teams(first: $first, after: $after) {
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {
        id: databaseId
        name
        slug
        members {
          nodes {
            id: databaseId
            login
            name
            email
          }
        }
      }
    }
  }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables queryVariables `json:"variables"`
}

type queryVariables struct {
	First int     `json:"first"`
	After *string `json:"after"`
	Org   string  `json:"org"`
}
