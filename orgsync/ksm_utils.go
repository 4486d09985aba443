package orgsync

import (
	"errors"
	"strings"

	ksm "github.com/keeper-security/secrets-manager-go/core"
)

const (
	organizationLabel = "GitHub Organization"
	verboseLabel      = "Verbose"
	strictLabel       = "Strict Pagination"
	retriesLabel      = "Retries"
)

// FindSyncRecord returns the first login record that carries a GitHub token and a
// "GitHub Organization" custom field.
func FindSyncRecord(records []*ksm.Record) *ksm.Record {
	for _, r := range records {
		if r.Type() != "login" {
			continue
		}
		if len(r.Password()) == 0 {
			continue
		}
		if len(ParseFieldValues(r.GetCustomFieldsByLabel(organizationLabel))) == 0 {
			continue
		}
		return r
	}
	return nil
}

// LoadParametersFromRecord reads the sync parameters from a Keeper record:
// the password is the GitHub token, the url field an optional API base URL.
func LoadParametersFromRecord(record *ksm.Record) (params *Parameters, err error) {
	var orgs = ParseFieldValues(record.GetCustomFieldsByLabel(organizationLabel))
	if len(orgs) == 0 {
		err = errors.New("\"GitHub Organization\" custom field is missing or does not contain any value")
		return
	}
	var token = record.Password()
	if len(token) == 0 {
		err = errors.New("GitHub token is missing. Store the token in the record password")
		return
	}

	params = &Parameters{
		Organization: orgs[0],
		Token:        token,
		BaseUrl:      strings.TrimSpace(record.GetFieldValueByType("url")),
	}

	var ok bool
	var bv bool
	var fields = record.GetCustomFieldsByLabel(verboseLabel)
	if len(fields) > 0 {
		if bv, ok = toBoolean(fields[0]["value"]); ok {
			params.Verbose = bv
		}
	}
	fields = record.GetCustomFieldsByLabel(strictLabel)
	if len(fields) > 0 {
		if bv, ok = toBoolean(fields[0]["value"]); ok {
			params.FailOnHttpError = bv
		}
	}
	fields = record.GetCustomFieldsByLabel(retriesLabel)
	if len(fields) > 0 {
		var iv int64
		if iv, ok = toInt64(fields[0]["value"]); ok && iv > 0 {
			params.Retries = int(iv)
		}
	}
	return
}
