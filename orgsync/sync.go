// Package orgsync imports a GitHub organization's teams, users and memberships into
// the directory storage.
package orgsync

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"keepersecurity.com/ksm-github-sync/github"
	"keepersecurity.com/ksm-github-sync/storage"
)

type sync struct {
	source     IOrgDataSource
	storage    *storage.Storage
	logger     logrus.FieldLogger
	retries    int
	retryDelay time.Duration
}

type Option func(*sync)

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *sync) {
		s.logger = l
	}
}

// WithRetries retries a failed fetch up to n more times, waiting delay between
// attempts. Extraction errors are not retried.
func WithRetries(n int, delay time.Duration) Option {
	return func(s *sync) {
		s.retries = n
		s.retryDelay = delay
	}
}

// NewOrgSync creates a sync that writes what source returns into st.
func NewOrgSync(source IOrgDataSource, st *storage.Storage, options ...Option) IOrgSync {
	var s = &sync{
		source:  source,
		storage: st,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *sync) Source() IOrgDataSource {
	return s.source
}

// Sync fetches org, extracts the four record types and upserts them in one
// storage transaction. Any extraction error aborts before the storage is touched.
func (s *sync) Sync(ctx context.Context, org string) (stat *SyncStat, err error) {
	var syncId = uuid.NewString()
	var logger = s.logger.WithFields(logrus.Fields{"sync_id": syncId, "org": org})
	var started = time.Now()
	logger.Info("organization sync started")

	var response *github.Response
	if response, err = s.fetch(ctx, org, logger); err != nil {
		logger.WithError(err).Error("fetch failed")
		return
	}

	var organization github.Organization
	if organization, err = response.Organization(); err != nil {
		return nil, errors.Wrap(err, "extract organization")
	}
	var users []github.User
	if users, err = response.Users(); err != nil {
		return nil, errors.Wrap(err, "extract users")
	}
	var teams []github.Team
	if teams, err = response.Teams(); err != nil {
		return nil, errors.Wrap(err, "extract teams")
	}
	var memberships []github.Membership
	if memberships, err = response.Memberships(); err != nil {
		return nil, errors.Wrap(err, "extract memberships")
	}

	if err = s.storage.Transaction(func(tx *storage.Tx) (er1 error) {
		if er1 = tx.Upsert(storage.Orgs, organization.Record()); er1 != nil {
			return
		}
		if er1 = tx.Upsert(storage.Users, storage.Records(users)...); er1 != nil {
			return
		}
		if er1 = tx.Upsert(storage.Teams, storage.Records(teams)...); er1 != nil {
			return
		}
		return tx.Upsert(storage.Memberships, storage.Records(memberships)...)
	}); err != nil {
		logger.WithError(err).Error("storage transaction failed, collections may be partially written")
		return nil, errors.Wrap(err, "store organization")
	}

	stat = &SyncStat{
		SyncId:       syncId,
		Organization: organization.Login,
		Started:      started,
		Finished:     time.Now(),
		Orgs:         1,
		Users:        len(users),
		Teams:        len(teams),
		Memberships:  len(memberships),
	}
	logger.WithFields(logrus.Fields{
		"users":       stat.Users,
		"teams":       stat.Teams,
		"memberships": stat.Memberships,
	}).Info("organization sync finished")
	return
}

func (s *sync) fetch(ctx context.Context, org string, logger logrus.FieldLogger) (response *github.Response, err error) {
	if s.retries <= 0 {
		return s.source.Fetch(ctx, org)
	}
	err = retry.Do(
		func() (er1 error) {
			response, er1 = s.source.Fetch(ctx, org)
			return
		},
		retry.Context(ctx),
		retry.Attempts(uint(s.retries)+1),
		retry.Delay(s.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, er1 error) {
			logger.WithError(er1).Warnf("fetch attempt %d failed, retrying", n+1)
		}),
	)
	return
}
