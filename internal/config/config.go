package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/denbox-io/denbox/internal/logging"
)

// Tool-wide constants. The ownership label is the only registry denbox
// has: every container it creates carries it, and every fleet-wide
// operation filters on it.
const (
	// LabelKey marks containers owned by denbox. The value is the
	// absolute project path the container was created for.
	LabelKey = "io.denbox.project"

	// HomeVolume is the shared named volume mounted at the container
	// home of every denbox container.
	HomeVolume = "denbox-home"

	// DefaultImage is used when neither the environment nor the config
	// file overrides the image reference.
	DefaultImage = "ghcr.io/denbox-io/denbox:latest"

	// DefaultHome is the in-container mount point for HomeVolume.
	DefaultHome = "/root"

	// DefaultShell runs shell sessions and one-shot execs.
	DefaultShell = "/bin/bash"

	// AgentSocketTarget is the in-container path the host SSH agent
	// socket is mounted at when one is present.
	AgentSocketTarget = "/ssh-agent"
)

// Environment overrides, read once at startup.
const (
	// EnvImage overrides the image reference.
	EnvImage = "DENBOX_IMAGE"

	// EnvContext overrides the docker context denbox talks to.
	EnvContext = "DENBOX_DOCKER_CONTEXT"
)

// Settings holds the resolved tool configuration.
// Precedence: environment > config file > defaults.
type Settings struct {
	// Image is the container image reference
	Image string `toml:"image"`

	// Context selects a docker context; empty uses the active one
	Context string `toml:"context"`

	// Home is the container home directory the shared volume mounts at
	Home string `toml:"home"`

	// Shell is the program run for shell sessions and execs
	Shell string `toml:"shell"`

	// Command optionally overrides the image command at creation,
	// given as a single shell-quoted string
	Command string `toml:"command"`
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Image: DefaultImage,
		Home:  DefaultHome,
		Shell: DefaultShell,
	}
}

// File returns the path of the optional TOML config file,
// or "" when no user config directory can be determined.
func File() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "denbox", "config.toml")
}

// Load resolves settings once at startup: defaults, then the optional
// config file, then environment overrides. A missing file is fine;
// a malformed one is fatal.
func Load() (*Settings, error) {
	return LoadFile(File())
}

// LoadFile is Load with an explicit file path.
func LoadFile(path string) (*Settings, error) {
	s := DefaultSettings()

	if path != "" {
		if _, err := toml.DecodeFile(path, s); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
			logging.Debug("no config file", "path", path)
		}
	}

	if img := os.Getenv(EnvImage); img != "" {
		s.Image = img
	}
	if dctx := os.Getenv(EnvContext); dctx != "" {
		s.Context = dctx
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks the resolved settings. Errors here are fatal before
// any runtime call is made.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Image) == "" {
		return fmt.Errorf("image must not be empty")
	}
	if !filepath.IsAbs(s.Home) {
		return fmt.Errorf("home must be an absolute container path, got %q", s.Home)
	}
	if strings.TrimSpace(s.Shell) == "" {
		return fmt.Errorf("shell must not be empty")
	}
	if _, err := s.ShellArgv(); err != nil {
		return fmt.Errorf("shell %q: %w", s.Shell, err)
	}
	if _, err := s.CommandArgv(); err != nil {
		return fmt.Errorf("command %q: %w", s.Command, err)
	}
	return nil
}

// ShellArgv returns the configured shell as an argv slice.
func (s *Settings) ShellArgv() ([]string, error) {
	return shellquote.Split(s.Shell)
}

// CommandArgv returns the creation-time command override as an argv
// slice, or nil when no override is configured.
func (s *Settings) CommandArgv() ([]string, error) {
	if s.Command == "" {
		return nil, nil
	}
	return shellquote.Split(s.Command)
}
