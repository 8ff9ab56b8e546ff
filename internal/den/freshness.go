package den

import (
	"context"
	"strings"

	"github.com/denbox-io/denbox/internal/logging"
	"github.com/denbox-io/denbox/internal/runtime"
)

// imageStale reports whether a container was created from an image
// that no longer matches the local resolution of wantImage. Purely
// advisory: every failure path answers false.
func imageStale(ctx context.Context, rt runtime.Runtime, name, wantImage string) bool {
	details, err := rt.Inspect(ctx, name)
	if err != nil {
		return false
	}

	wantID, err := rt.ImageID(ctx, wantImage)
	if err != nil {
		logging.Debug("image not resolvable locally", "image", wantImage, "error", err)
		return false
	}

	return details.ImageID != "" && wantID != "" && details.ImageID != wantID
}

// remoteImage reports whether an image reference names a repository
// that can be pulled. References without a registry or namespace
// component ("denbox:latest", "scratchpad") count as local-only.
func remoteImage(ref string) bool {
	name := ref
	// Strip the tag. A colon after the last slash separates a tag;
	// earlier colons belong to a registry port.
	if i := strings.LastIndex(name, ":"); i != -1 && !strings.Contains(name[i:], "/") {
		name = name[:i]
	}
	return strings.Contains(name, "/")
}
