package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"keepersecurity.com/ksm-github-sync/config"
	"keepersecurity.com/ksm-github-sync/github"
	"keepersecurity.com/ksm-github-sync/orgsync"
	"keepersecurity.com/ksm-github-sync/storage"
)

func syncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch the organization from GitHub and upsert it into the store",
		Args:  cobra.NoArgs,
		RunE:  runSync,
	}
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}

	st, err := openStorage(afero.NewOsFs(), cfg.Store)
	if err != nil {
		logger.WithError(err).Error("could not open storage")
		return err
	}

	var client = github.NewClient(cfg.GitHub.Token, github.Config{
		BaseURL:         cfg.GitHub.BaseURL,
		UserAgent:       cfg.GitHub.UserAgent,
		PageSize:        cfg.GitHub.PageSize,
		FailOnHTTPError: cfg.GitHub.FailOnHTTPError,
	},
		github.WithPacer(github.FixedPacer{Delay: cfg.GitHub.PageDelay}),
		github.WithLogger(logger),
	)
	var orgSync = orgsync.NewOrgSync(client, st,
		orgsync.WithLogger(logger),
		orgsync.WithRetries(cfg.Sync.Retries, cfg.Sync.RetryDelay),
	)

	ctx, cancel := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stat, err := orgSync.Sync(ctx, cfg.Sync.Org)
	if err != nil {
		return err
	}
	if st.Path() != "" {
		logger.WithField("path", st.Path()).Debug("storage saved")
	}
	orgsync.PrintStatistics(cmd.OutOrStdout(), stat)
	return nil
}

// openStorage loads the JSON store at cfg.Path, or returns an in-memory store when
// no path is configured.
func openStorage(fs afero.Fs, cfg config.StoreConfig) (*storage.Storage, error) {
	if cfg.Path == "" {
		return storage.New(), nil
	}
	st, err := storage.Open(fs, cfg.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", cfg.Path)
	}
	return st, nil
}

func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
