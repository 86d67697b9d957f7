package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tokenlistConverter/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// Store provides Postgres persistence for converted token lists.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// PutTokenList replaces the stored snapshot of source with list in one transaction.
// Empty lists are skipped so a failed fetch never wipes a previous snapshot.
func (s *Store) PutTokenList(ctx context.Context, source string, list model.TargetList) error {
	if len(list.Tokens) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var major, minor, patch *int64
	if list.Version != nil {
		ma, mi, pa := int64(list.Version.Major), int64(list.Version.Minor), int64(list.Version.Patch)
		major, minor, patch = &ma, &mi, &pa
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO token_lists (
			source, name, version_major, version_minor, version_patch, logo_uri, token_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (source)
		DO UPDATE SET
			name = EXCLUDED.name,
			version_major = EXCLUDED.version_major,
			version_minor = EXCLUDED.version_minor,
			version_patch = EXCLUDED.version_patch,
			logo_uri = EXCLUDED.logo_uri,
			token_count = EXCLUDED.token_count,
			updated_at = now()
	`,
		source,
		list.Name,
		major,
		minor,
		patch,
		nullableString(list.LogoURI),
		len(list.Tokens),
	); err != nil {
		return fmt.Errorf("upsert token list: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM token_pairs WHERE source = $1 AND position >= $2`, source, len(list.Tokens)); err != nil {
		return fmt.Errorf("trim token pairs: %w", err)
	}

	batch := &pgx.Batch{}
	for i, token := range list.Tokens {
		batch.Queue(`
			INSERT INTO token_pairs (
				source, position, chain_id, symbol, name, decimals, logo_uri, address0, address1, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
			ON CONFLICT (source, position)
			DO UPDATE SET
				chain_id = EXCLUDED.chain_id,
				symbol = EXCLUDED.symbol,
				name = EXCLUDED.name,
				decimals = EXCLUDED.decimals,
				logo_uri = EXCLUDED.logo_uri,
				address0 = EXCLUDED.address0,
				address1 = EXCLUDED.address1,
				updated_at = now()
		`,
			source,
			i,
			int64(token.ChainID),
			token.Symbol,
			token.Name,
			int16(token.Decimals),
			nullableString(token.LogoURI),
			token.Address0,
			token.Address1,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range list.Tokens {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("upsert token pair: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return tx.Commit(ctx)
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
