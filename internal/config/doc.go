// Package config holds denbox settings and tool-wide constants.
//
// Configuration is resolved exactly once at startup, from three layers
// in ascending precedence:
//
//  1. documented defaults (DefaultSettings)
//  2. the optional TOML file at <UserConfigDir>/denbox/config.toml
//  3. the DENBOX_IMAGE and DENBOX_DOCKER_CONTEXT environment variables
//
// A missing config file is not an error; a malformed one, or settings
// that fail validation, abort the run before any runtime call.
//
// # Config file
//
//	image   = "ghcr.io/denbox-io/denbox:latest"
//	context = ""          # docker context; empty = active context
//	home    = "/root"     # mount point of the shared home volume
//	shell   = "/bin/bash" # shell sessions and one-shot execs
//	command = ""          # optional image command override at creation
//
// The command string is parsed with shell quoting rules, so arguments
// with spaces can be quoted the way a shell would expect.
package config
