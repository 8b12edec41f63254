package config

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// stamp records when a scene was saved. The commit is left empty outside a git checkout and the
// error says why.
func stamp(m *Metadata, saved time.Time) error {
	m.Timestamp = saved.UTC().Format(timestampLayout)
	m.GitCommit = ""
	commit, err := headCommit()
	if err != nil {
		return fmt.Errorf("reading git commit: %w", err)
	}
	m.GitCommit = commit
	return nil
}

func headCommit() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--verify", "HEAD").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
