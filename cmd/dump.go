package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	jsoniter "github.com/json-iterator/go"

	"keepersecurity.com/ksm-github-sync/config"
	"keepersecurity.com/ksm-github-sync/storage"
)

func dumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [collection]",
		Short: "Print the stored collections as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path, _ = cmd.Flags().GetString("store")
			return runDump(cmd, afero.NewOsFs(), path, args)
		},
	}
}

func runDump(cmd *cobra.Command, fs afero.Fs, path string, args []string) (err error) {
	if path == "" {
		return errors.New("--store is required")
	}
	var st *storage.Storage
	if st, err = openStorage(fs, config.StoreConfig{Path: path}); err != nil {
		return
	}

	var out any = st.Dump()
	if len(args) == 1 {
		var c *storage.Collection
		if c, err = st.Collection(args[0]); err != nil {
			return
		}
		out = c.Dump()
	}

	var data []byte
	if data, err = jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(out, "", "  "); err != nil {
		return errors.Wrap(err, "encode dump")
	}
	_, err = cmd.OutOrStdout().Write(append(data, '\n'))
	return
}
