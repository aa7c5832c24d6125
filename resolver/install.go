package resolver

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/steadyplay/steadyplay/internal/script"
	"github.com/steadyplay/steadyplay/log"
	"github.com/steadyplay/steadyplay/where"
)

// Install downloads a Lua resolver script into the resolvers directory and
// returns its path. sum, when set, is the expected hex SHA-256 of the script.
func Install(ctx context.Context, rawURL, sum string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	name := path.Base(u.Path)
	if !strings.HasSuffix(name, CustomExtension) || name == CustomExtension {
		return "", fmt.Errorf("%s does not point to a .lua file", rawURL)
	}

	local := filepath.Join(where.Resolvers(), name)
	updated, err := script.Fetch(ctx, rawURL, local, sum)
	if err != nil {
		return "", err
	}

	if updated {
		log.Infof("installed resolver %s from %s", name, rawURL)
	} else {
		log.Infof("resolver %s is up to date", name)
	}
	return local, nil
}
