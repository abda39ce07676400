package load

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed sql/schema.sql sql/views.sql
var ddlFS embed.FS

// DeploySchema applies the table DDL. Idempotent.
func DeploySchema(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	return applyFile(ctx, pool, logger, "sql/schema.sql")
}

// DeployViews applies the leaderboard view DDL. Idempotent.
func DeployViews(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	return applyFile(ctx, pool, logger, "sql/views.sql")
}

// applyFile runs every statement in an embedded SQL file. The files hold
// plain DDL with no procedural bodies, so splitting on semicolons is safe.
func applyFile(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger, name string) error {
	raw, err := ddlFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	applied := 0
	for _, stmt := range splitStatements(string(raw)) {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply %s statement %d: %w", name, applied+1, err)
		}
		applied++
	}

	if logger != nil {
		logger.Info("DDL applied", "file", name, "statements", applied)
	}
	return nil
}

// splitStatements breaks a DDL file into individual statements, dropping
// comment lines and blanks.
func splitStatements(sql string) []string {
	var stmts []string
	for _, chunk := range strings.Split(sql, ";") {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
