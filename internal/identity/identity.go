// Package identity derives container names from project paths.
//
// A project directory maps to exactly one container name, computed as a
// pure function of the absolute path. The runtime's name registry is
// the only place the mapping lives; nothing is persisted on the host.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// Prefix namespaces every denbox container name.
	Prefix = "denbox"

	// digestLen is the number of hex digits of the path digest kept in
	// the name. Eight digits keep names readable; the collision chance
	// across a realistic number of project directories is negligible
	// and accepted as a known limitation.
	digestLen = 8

	// segmentMax caps the sanitized path segment so the full name stays
	// comfortably inside the 63-character hostname limit.
	segmentMax = 40
)

var invalidRunes = regexp.MustCompile(`[^a-z0-9]+`)

// ContainerName derives the container name for a project directory:
//
//	denbox-<segment>-<digest8>
//
// where segment is the sanitized final path element and digest8 is the
// first eight hex digits of the SHA-256 of the full cleaned path.
// Identical paths always map to the same name; distinct paths are
// discriminated by the digest even when their final elements collide.
// The name doubles as the container hostname, so the output charset is
// restricted to lowercase alphanumerics and hyphens.
func ContainerName(projectPath string) string {
	clean := filepath.Clean(projectPath)

	sum := sha256.Sum256([]byte(clean))
	digest := hex.EncodeToString(sum[:])[:digestLen]

	return Prefix + "-" + sanitizeSegment(filepath.Base(clean)) + "-" + digest
}

// sanitizeSegment folds a path element into the hostname charset:
// lowercase, invalid runs replaced with a single hyphen, edges trimmed,
// length capped. Degenerate elements (root, all-invalid) fall back to
// "project"; the digest still tells such paths apart.
func sanitizeSegment(segment string) string {
	s := strings.ToLower(segment)
	s = invalidRunes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > segmentMax {
		s = strings.TrimRight(s[:segmentMax], "-")
	}

	if s == "" {
		return "project"
	}
	return s
}
