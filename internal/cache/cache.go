// Package cache stores resolver HTTP responses on disk for a limited time.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/log"
	"github.com/steadyplay/steadyplay/where"
)

// TTL is how long an entry stays valid.
const TTL = 24 * time.Hour

// GenerateKey derives a file-safe key from a request and its namespace.
func GenerateKey(request, namespace string) string {
	sanitized := strings.ToLower(strings.ReplaceAll(request, " ", "")) + namespace
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read decodes the entry for key into target. It reports false for missing,
// expired or undecodable entries.
func Read(key string, target any) bool {
	path := filepath.Join(where.Responses(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	return json.Unmarshal(data, target) == nil
}

// Write stores data under key.
func Write(key string, data any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return filesystem.WriteAtomic(filepath.Join(where.Responses(), key), encoded)
}

// CollectGarbage removes expired entries in the background.
func CollectGarbage() {
	go func() {
		removed := 0
		_ = filesystem.API().Walk(where.Responses(), func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			if time.Since(info.ModTime()) > TTL {
				if filesystem.API().Remove(path) == nil {
					removed++
				}
			}
			return nil
		})
		if removed > 0 {
			log.Debugf("removed %d expired cache entries", removed)
		}
	}()
}
