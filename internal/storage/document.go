package storage

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"tokenlistConverter/internal/model"
)

// DocumentStorage writes each converted list as an indented JSON document.
// With PerSource set, path is a directory and every source gets its own file.
type DocumentStorage struct {
	path      string
	perSource bool
}

func NewDocumentStorage(path string, perSource bool) *DocumentStorage {
	return &DocumentStorage{path: path, perSource: perSource}
}

// PutTokenList replaces the target file atomically.
func (s *DocumentStorage) PutTokenList(_ context.Context, source string, list model.TargetList) error {
	target := s.path
	if s.perSource {
		target = filepath.Join(s.path, DocumentFileName(source, list))
	}

	dir := filepath.Dir(target)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal token list: %w", err)
	}
	data = append(data, '\n')

	tmpPath := target + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write token list tmp: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename token list: %w", err)
	}
	return nil
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9]+`)

// DocumentFileName derives a stable file name from the list name, falling
// back to the source when the list is unnamed. A short digest of the source
// keeps lists that share a name from replacing each other.
func DocumentFileName(source string, list model.TargetList) string {
	base := list.Name
	if base == "" {
		base = source
	}
	slug := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(base), "-"), "-")
	if slug == "" {
		slug = "tokenlist"
	}
	return slug + "-" + sourceDigest(source) + ".json"
}

func sourceDigest(source string) string {
	return hex.EncodeToString(crypto.Keccak256([]byte(source))[:4])
}
