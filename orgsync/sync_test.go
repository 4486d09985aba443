package orgsync

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keepersecurity.com/ksm-github-sync/github"
	"keepersecurity.com/ksm-github-sync/storage"
)

const orgJSON = `{"data":{"organization":{"id":9,"login":"acme","teams":{
  "pageInfo":{"hasNextPage":false,"endCursor":null},
  "nodes":[
    {"id":20,"name":"Ops","slug":"ops","members":{"nodes":[
      {"id":2,"login":"Bob","name":"Bob","email":"bob@example.com"}
    ]}},
    {"id":10,"name":"Eng","slug":"eng","members":{"nodes":[
      {"id":1,"login":"al","name":null,"email":""},
      {"id":2,"login":"Bob","name":"Bob","email":"bob@example.com"}
    ]}}
  ]}}}}`

type fakeSource struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeSource) Fetch(_ context.Context, _ string) (*github.Response, error) {
	var n = f.calls
	f.calls++
	if n < len(f.errs) && f.errs[n] != nil {
		return nil, f.errs[n]
	}
	var r github.Response
	if err := json.Unmarshal([]byte(f.responses[n%len(f.responses)]), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func newSync(t *testing.T, source IOrgDataSource, st *storage.Storage, options ...Option) IOrgSync {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return NewOrgSync(source, st, append([]Option{WithLogger(logger)}, options...)...)
}

func TestSyncWritesAllCollections(t *testing.T) {
	st := storage.New()
	source := &fakeSource{responses: []string{orgJSON}}
	s := newSync(t, source, st)
	assert.Equal(t, source, s.Source())

	stat, err := s.Sync(context.Background(), "acme")
	require.NoError(t, err)

	assert.Equal(t, "acme", stat.Organization)
	assert.NotEmpty(t, stat.SyncId)
	assert.Equal(t, 1, stat.Orgs)
	assert.Equal(t, 3, stat.Users, "one user record per team edge")
	assert.Equal(t, 2, stat.Teams)
	assert.Equal(t, 3, stat.Memberships)
	assert.False(t, stat.Finished.Before(stat.Started))

	dump := st.Dump()
	assert.Equal(t, []storage.Record{{"id": int64(9), "login": "acme"}}, dump[storage.Orgs])
	assert.Len(t, dump[storage.Users], 2, "duplicate user edges merge into one record")
	assert.Len(t, dump[storage.Teams], 2)
	assert.Len(t, dump[storage.Memberships], 3)
	assert.Equal(t, []int64{10, 1}, dump[storage.Memberships][0]["id"])
}

func TestSyncTwiceMergesRecords(t *testing.T) {
	st := storage.New()
	users, err := st.Collection(storage.Users)
	require.NoError(t, err)
	require.NoError(t, users.Upsert(storage.Record{"id": int64(1), "slack_id": "U123"}))

	s := newSync(t, &fakeSource{responses: []string{orgJSON}}, st)
	_, err = s.Sync(context.Background(), "acme")
	require.NoError(t, err)
	_, err = s.Sync(context.Background(), "acme")
	require.NoError(t, err)

	assert.Equal(t, 2, users.Len())
	al, ok := users.Find(func(r storage.Record) bool { return r["login"] == "al" })
	require.True(t, ok)
	assert.Equal(t, "U123", al["slack_id"], "fields not in the sync are preserved")
}

func TestSyncExtractionErrorLeavesStorageUntouched(t *testing.T) {
	st := storage.New()
	s := newSync(t, &fakeSource{responses: []string{
		`{"data":{"organization":{"id":1,"login":"a","teams":{"nodes":[{"id":2,"name":"n","slug":"n","members":{"nodes":[{"id":3}]}}]}}}}`,
	}}, st)

	_, err := s.Sync(context.Background(), "acme")
	require.Error(t, err)
	assert.ErrorIs(t, err, github.ErrMissingField)
	for _, records := range st.Dump() {
		assert.Empty(t, records)
	}
}

func TestSyncEmptyResponseFails(t *testing.T) {
	s := newSync(t, &fakeSource{responses: []string{`{}`}}, storage.New())
	_, err := s.Sync(context.Background(), "acme")
	assert.ErrorIs(t, err, github.ErrMissingField)
}

func TestSyncFetchErrorWithoutRetries(t *testing.T) {
	boom := errors.New("connection refused")
	source := &fakeSource{responses: []string{orgJSON}, errs: []error{boom}}
	_, err := newSync(t, source, storage.New()).Sync(context.Background(), "acme")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, source.calls)
}

func TestSyncRetriesFetch(t *testing.T) {
	boom := errors.New("connection reset")
	source := &fakeSource{responses: []string{orgJSON}, errs: []error{boom, boom}}
	stat, err := newSync(t, source, storage.New(), WithRetries(2, time.Millisecond)).Sync(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, 3, source.calls)
	assert.Equal(t, 2, stat.Teams)
}

func TestSyncRetriesExhausted(t *testing.T) {
	boom := errors.New("connection reset")
	source := &fakeSource{responses: []string{orgJSON}, errs: []error{boom, boom, boom}}
	_, err := newSync(t, source, storage.New(), WithRetries(1, time.Millisecond)).Sync(context.Background(), "acme")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, source.calls)
}

func TestSyncSavesFileBackedStorage(t *testing.T) {
	fs := afero.NewMemMapFs()
	st, err := storage.Open(fs, "/var/lib/sync/acme.json")
	require.NoError(t, err)

	_, err = newSync(t, &fakeSource{responses: []string{orgJSON}}, st).Sync(context.Background(), "acme")
	require.NoError(t, err)

	reopened, err := storage.Open(fs, "/var/lib/sync/acme.json")
	require.NoError(t, err)
	d := NewDirectory(reopened)
	bob, ok := d.UserByLogin("bob")
	require.True(t, ok)
	assert.Len(t, d.TeamsForUser(bob["id"]), 2)
}
