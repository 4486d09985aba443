package orgsync

import (
	"context"
	"time"

	"keepersecurity.com/ksm-github-sync/github"
)

// IOrgDataSource is the source of one organization snapshot.
type IOrgDataSource interface {
	Fetch(ctx context.Context, org string) (*github.Response, error)
}

type IOrgSync interface {
	Source() IOrgDataSource
	Sync(ctx context.Context, org string) (*SyncStat, error)
}

// SyncStat summarizes one organization sync.
type SyncStat struct {
	SyncId       string
	Organization string
	Started      time.Time
	Finished     time.Time
	Orgs         int
	Users        int
	Teams        int
	Memberships  int
}

// Parameters configures a sync run from a Keeper record or the command line.
type Parameters struct {
	Organization    string
	Token           string
	BaseUrl         string
	FailOnHttpError bool
	Verbose         bool
	Retries         int
}
