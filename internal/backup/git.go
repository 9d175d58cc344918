// Package backup snapshots the task list to a local git repository and
// optionally pushes it to a configured remote.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"taskdeck/internal/export"
	"taskdeck/internal/repository"
)

// SnapshotFile is the file name the task list is written to inside the
// backup repository.
const SnapshotFile = "tasks.json"

// ErrNoRemote is returned by Push when no remote repository is configured.
var ErrNoRemote = errors.New("no backup remote configured")

// Manager owns the backup repository directory.
type Manager struct {
	dir    string // backup repository root
	remote string // remote URL, empty when backups stay local
}

func NewManager(dir, remote string) *Manager {
	return &Manager{dir: dir, remote: remote}
}

func (m *Manager) Dir() string { return m.dir }

// Snapshot writes the current task list into the repository and commits it.
// The repository is initialized on first use.
func (m *Manager) Snapshot(ctx context.Context, store repository.TaskStore) error {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	if err := m.ensureRepo(); err != nil {
		return err
	}

	path := filepath.Join(m.dir, SnapshotFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	if err := export.Export(ctx, f, store, export.FormatJSON); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	if err := m.git("add", SnapshotFile); err != nil {
		return err
	}

	// nothing to commit when the snapshot is unchanged
	if m.gitQuiet("diff", "--cached", "--quiet") == nil {
		return nil
	}

	msg := fmt.Sprintf("backup %s", time.Now().Format("2006-01-02 15:04:05"))
	return m.git("commit", "-m", msg)
}

// Push sends the backup repository to the configured remote.
func (m *Manager) Push() error {
	if m.remote == "" {
		return ErrNoRemote
	}
	if err := m.setRemote(); err != nil {
		return err
	}
	return m.git("push", "-u", "origin", "HEAD")
}

func (m *Manager) ensureRepo() error {
	if _, err := os.Stat(filepath.Join(m.dir, ".git")); err == nil {
		return nil
	}
	return m.git("init")
}

func (m *Manager) setRemote() error {
	if m.gitQuiet("remote", "get-url", "origin") == nil {
		return m.git("remote", "set-url", "origin", m.remote)
	}
	return m.git("remote", "add", "origin", m.remote)
}

func (m *Manager) git(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = m.dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s: %w: %s", args[0], err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}

// gitQuiet runs git for its exit code only.
func (m *Manager) gitQuiet(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = m.dir
	return cmd.Run()
}
