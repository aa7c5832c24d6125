package script

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/network"
)

func checksum(content []byte) [32]byte {
	return sha256.Sum256(content)
}

// Sum returns the hex SHA-256 of content.
func Sum(content []byte) string {
	sum := checksum(content)
	return hex.EncodeToString(sum[:])
}

// Fetch downloads url into localPath. When want is not empty the download
// must hash to it. The file is only rewritten when its content changes.
func Fetch(ctx context.Context, url, localPath, want string) (updated bool, err error) {
	body, err := network.Get(ctx, url, nil)
	if err != nil {
		return false, err
	}

	remote := Sum(body)
	if want != "" && !strings.EqualFold(want, remote) {
		return false, fmt.Errorf("checksum mismatch for %s: got %s, want %s", url, remote, want)
	}

	if local, err := filesystem.API().ReadFile(localPath); err == nil && Sum(local) == remote {
		return false, nil
	}

	if err := filesystem.WriteAtomic(localPath, body); err != nil {
		return false, err
	}

	Forget(localPath)
	return true, nil
}
