package den

import (
	"os"

	"github.com/denbox-io/denbox/internal/config"
	"github.com/denbox-io/denbox/internal/errors"
	"github.com/denbox-io/denbox/internal/logging"
	"github.com/denbox-io/denbox/internal/runtime"
)

// assemble builds the creation-time configuration for a project
// container: the project bind-mounted at its own path, the shared home
// volume, the optional agent socket, then any user volumes. Working
// directory and hostname follow the identity.
func assemble(d *Den, settings *config.Settings, act Action, agentSock string) (runtime.RunOptions, error) {
	command, err := settings.CommandArgv()
	if err != nil {
		return runtime.RunOptions{}, errors.ConfigError("invalid command override", err)
	}

	opts := runtime.RunOptions{
		Name:     d.Name,
		Hostname: d.Name,
		Image:    settings.Image,
		WorkDir:  d.Path,
		Labels:   map[string]string{config.LabelKey: d.Path},
		Mounts: []runtime.Mount{
			{Source: d.Path, Target: d.Path},
			{Source: config.HomeVolume, Target: settings.Home},
		},
		Ports:   act.Ports,
		Command: command,
	}

	// The socket mount and the env var pointing at it travel together:
	// both present when the probe found a live socket, both absent
	// otherwise.
	if agentSock != "" {
		opts.Mounts = append(opts.Mounts, runtime.Mount{
			Source: agentSock,
			Target: config.AgentSocketTarget,
		})
		opts.Env = append(opts.Env, "SSH_AUTH_SOCK="+config.AgentSocketTarget)
	}

	opts.Mounts = append(opts.Mounts, act.Volumes...)

	return opts, nil
}

// agentSocket probes for a live host SSH agent socket. It returns the
// socket path, or "" when the environment does not provide one.
func agentSocket() string {
	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return ""
	}
	if _, err := os.Stat(sock); err != nil {
		logging.Debug("agent socket not usable", "path", sock, "error", err)
		return ""
	}
	return sock
}
