// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package artifacts

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

// csvReader parses artifact CSV files through an in-memory DuckDB instance,
// which handles quoting, embedded newlines and type coercion for us.
type csvReader struct {
	conn *sql.DB
}

func openCSVReader() (*csvReader, error) {
	conn, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open in-memory duckdb: %w", err)
	}
	// One connection keeps the in-memory catalog consistent.
	conn.SetMaxOpenConns(1)
	return &csvReader{conn: conn}, nil
}

func (r *csvReader) Close() error {
	return r.conn.Close()
}

// sqlStringLiteral quotes s as a SQL string literal.
func sqlStringLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ReadMetadata loads combined_data.csv: movieId, title, content, tmdbId.
// The content column is a whitespace-separated genre token list.
// Rows whose movieId is not an integer are rejected; an unparsable tmdbId
// becomes nil.
func (r *csvReader) ReadMetadata(ctx context.Context, path string) ([]ItemMetadata, error) {
	if err := statArtifact(path); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			CAST(movieId AS BIGINT),
			COALESCE(title, ''),
			COALESCE(content, ''),
			TRY_CAST(TRY_CAST(tmdbId AS DOUBLE) AS BIGINT)
		FROM read_csv(%s, header = true, all_varchar = true)`, sqlStringLiteral(path))

	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptArtifact, path, err)
	}
	defer func() { _ = rows.Close() }()

	var out []ItemMetadata
	for rows.Next() {
		var (
			m       ItemMetadata
			content string
			tmdbID  sql.NullInt64
		)
		if err := rows.Scan(&m.ItemID, &m.Title, &content, &tmdbID); err != nil {
			return nil, fmt.Errorf("%w: %s: scan metadata row: %v", ErrCorruptArtifact, path, err)
		}
		m.Genres = strings.Fields(content)
		if tmdbID.Valid {
			id := tmdbID.Int64
			m.TMDBID = &id
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptArtifact, path, err)
	}
	return out, nil
}

// ReadPopularity loads popular_movies.csv. File order is popularity order.
func (r *csvReader) ReadPopularity(ctx context.Context, path string) ([]int64, error) {
	if err := statArtifact(path); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT CAST(movieId AS BIGINT)
		FROM read_csv(%s, header = true, all_varchar = true)`, sqlStringLiteral(path))

	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptArtifact, path, err)
	}
	defer func() { _ = rows.Close() }()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %s: scan popularity row: %v", ErrCorruptArtifact, path, err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptArtifact, path, err)
	}
	return out, nil
}

func statArtifact(path string) error {
	if _, err := os.Stat(path); err != nil {
		return wrapOpenError(path, err)
	}
	return nil
}
