package ksm_github_sync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/cloudevents/sdk-go/v2/event"
	ksm "github.com/keeper-security/secrets-manager-go/core"
	"github.com/sirupsen/logrus"

	"keepersecurity.com/ksm-github-sync/github"
	"keepersecurity.com/ksm-github-sync/orgsync"
	"keepersecurity.com/ksm-github-sync/storage"
)

func init() {
	// Register an HTTP function with the Functions Framework
	functions.HTTP("GcpGithubSyncHttp", gcpGithubSyncHttp)
	functions.CloudEvent("GcpGithubSyncPubSub", gcpGithubSyncPubSub)
}

const ksmConfigName = "KSM_CONFIG_BASE64"
const ksmRecordUid = "KSM_RECORD_UID"

func newLogger(verbose bool) *logrus.Logger {
	var logger = logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func loadParameters(logger logrus.FieldLogger) (params *orgsync.Parameters, err error) {
	var configBase64 = os.Getenv(ksmConfigName)
	if len(configBase64) == 0 {
		err = fmt.Errorf("environment variable \"%s\" is not set", ksmConfigName)
		logger.Error(err)
		return
	}

	var config = ksm.NewMemoryKeyValueStorage(configBase64)
	var sm = ksm.NewSecretsManager(&ksm.ClientOptions{
		Config: config,
	})

	var filter []string
	var recordUid = os.Getenv(ksmRecordUid)
	if len(recordUid) > 0 {
		filter = append(filter, recordUid)
	}

	var records []*ksm.Record
	if records, err = sm.GetSecrets(filter); err != nil {
		logger.Error(err)
		return
	}

	var syncRecord = orgsync.FindSyncRecord(records)
	if syncRecord == nil {
		err = errors.New("GitHub sync record was not found. Make sure the record is valid and shared to KSM application")
		logger.Error(err)
		return
	}
	if params, err = orgsync.LoadParametersFromRecord(syncRecord); err != nil {
		logger.Error(err)
	}
	return
}

func runGithubSync(ctx context.Context) (syncStat *orgsync.SyncStat, err error) {
	var logger = newLogger(false)

	var params *orgsync.Parameters
	if params, err = loadParameters(logger); err != nil {
		return
	}
	if params.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	var config = github.DefaultConfig()
	if len(params.BaseUrl) > 0 {
		config.BaseURL = params.BaseUrl
	}
	config.FailOnHTTPError = params.FailOnHttpError

	var client = github.NewClient(params.Token, config,
		github.WithPacer(github.FixedPacer{Delay: github.DefaultPageDelay}),
		github.WithLogger(logger))
	var sync = orgsync.NewOrgSync(client, storage.New(),
		orgsync.WithLogger(logger),
		orgsync.WithRetries(params.Retries, github.DefaultPageDelay))

	if syncStat, err = sync.Sync(ctx, params.Organization); err == nil {
		orgsync.PrintStatistics(os.Stdout, syncStat)
	}
	return
}

// Function gcpGithubSyncHttp is an HTTP handler
func gcpGithubSyncHttp(w http.ResponseWriter, r *http.Request) {
	var syncStat, err = runGithubSync(r.Context())
	if err == nil {
		orgsync.PrintStatistics(w, syncStat)
	} else {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// gcpGithubSyncPubSub runs the sync on a Pub/Sub CloudEvent.
func gcpGithubSyncPubSub(ctx context.Context, _ event.Event) (err error) {
	_, err = runGithubSync(ctx)
	return
}
