package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tokenlistConverter/internal/model"
)

// TokenPairRecord is one line of the token snapshot file.
type TokenPairRecord struct {
	Source    string `json:"source"`
	ListName  string `json:"list_name"`
	Position  int    `json:"position"`
	ChainID   uint64 `json:"chain_id"`
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Decimals  uint8  `json:"decimals"`
	Address0  string `json:"address0"`
	Address1  string `json:"address1"`
	WrittenAt string `json:"written_at"`
}

// JsonlStorage appends converted tokens as JSON lines, one per token, in list order.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutTokenList appends every token of list.
func (s *JsonlStorage) PutTokenList(_ context.Context, source string, list model.TargetList) error {
	if len(list.Tokens) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writtenAt := time.Now().UTC().Format(time.RFC3339Nano)
	writer := bufio.NewWriter(file)
	for i, token := range list.Tokens {
		line, err := json.Marshal(TokenPairRecord{
			Source:    source,
			ListName:  list.Name,
			Position:  i,
			ChainID:   token.ChainID,
			Symbol:    token.Symbol,
			Name:      token.Name,
			Decimals:  token.Decimals,
			Address0:  token.Address0,
			Address1:  token.Address1,
			WrittenAt: writtenAt,
		})
		if err != nil {
			return fmt.Errorf("marshal token record: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write token record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
