package orgsync

import (
	"golang.org/x/text/cases"

	"keepersecurity.com/ksm-github-sync/storage"
)

// Directory answers lookups over synced records. GitHub logins and team slugs
// compare case-insensitively.
type Directory struct {
	storage *storage.Storage
}

func NewDirectory(st *storage.Storage) *Directory {
	return &Directory{storage: st}
}

func sameFold(a any, b string) bool {
	var s, ok = a.(string)
	if !ok {
		return false
	}
	var fold = cases.Fold()
	return fold.String(s) == fold.String(b)
}

func (d *Directory) collection(name string) *storage.Collection {
	var c, err = d.storage.Collection(name)
	if err != nil {
		return nil
	}
	return c
}

// UserByLogin returns the user with the given login.
func (d *Directory) UserByLogin(login string) (storage.Record, bool) {
	var users = d.collection(storage.Users)
	if users == nil {
		return nil, false
	}
	return users.Find(func(r storage.Record) bool { return sameFold(r["login"], login) })
}

// TeamBySlug returns the team with the given slug.
func (d *Directory) TeamBySlug(slug string) (storage.Record, bool) {
	var teams = d.collection(storage.Teams)
	if teams == nil {
		return nil, false
	}
	return teams.Find(func(r storage.Record) bool { return sameFold(r["slug"], slug) })
}

// TeamsForUser returns the teams userId is a member of, in storage order.
func (d *Directory) TeamsForUser(userId any) []storage.Record {
	return d.join(storage.Teams, "user_id", userId, "team_id")
}

// MembersOfTeam returns the users that belong to teamId, in storage order.
func (d *Directory) MembersOfTeam(teamId any) []storage.Record {
	return d.join(storage.Users, "team_id", teamId, "user_id")
}

// join finds memberships whose matchField equals id and returns the records of
// target referenced by their otherField.
func (d *Directory) join(target string, matchField string, id any, otherField string) (result []storage.Record) {
	var memberships = d.collection(storage.Memberships)
	var records = d.collection(target)
	if memberships == nil || records == nil {
		return
	}
	var keys = NewSet[string]()
	for _, m := range memberships.FindAll(func(r storage.Record) bool { return storage.SameValue(r[matchField], id) }) {
		if key, err := storage.Key(m[otherField]); err == nil {
			keys.Add(key)
		}
	}
	if len(keys) == 0 {
		return
	}
	return records.FindAll(func(r storage.Record) bool {
		var rid, _ = r.ID()
		var key, err = storage.Key(rid)
		return err == nil && keys.Has(key)
	})
}
