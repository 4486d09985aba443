package main

import (
	"fmt"
	"os"

	"keepersecurity.com/ksm-github-sync/cmd"
)

func main() {
	if err := cmd.RootCommand().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
