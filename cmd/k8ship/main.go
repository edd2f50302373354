// Package main is the entry point for the k8ship CLI.
//
// k8ship deploys a stateless web application into a Kubernetes cluster:
// it reconciles the target namespace, applies the release's resources in
// dependency order, waits for the rollout to become ready and can reverse
// the whole installation again.
//
// Commands: install, upgrade, uninstall, status, template.
//
// For detailed usage information, run:
//
//	k8ship --help
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/imamik/k8ship/cmd/k8ship/commands"
	"github.com/imamik/k8ship/internal/deploy"
)

// Exit codes. PrerequisiteMissing gets its own code so callers can tell
// "environment not ready" from "deployment failed".
const (
	exitOK           = 0
	exitFailed       = 1
	exitPrerequisite = 2
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
	os.Exit(exitOK)
}

func exitCodeFor(err error) int {
	var prereq *deploy.PrerequisiteError
	if errors.As(err, &prereq) {
		return exitPrerequisite
	}
	return exitFailed
}
