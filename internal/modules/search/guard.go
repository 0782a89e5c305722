package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zeroclick/core/internal/modules/genai"
	"go.uber.org/zap"
)

// ErrUnsafeQuery means the model's output did not survive validation.
// The text is never repaired and never executed.
var ErrUnsafeQuery = errors.New("generated query rejected")

// GuardedQuery is SQL text that passed the guard. Only the guard
// constructs values of this type.
type GuardedQuery struct {
	sql string
}

func (q GuardedQuery) SQL() string { return q.sql }

// writeKeywords are rejected anywhere in the statement, not just at the
// front. A SELECT that smuggles DDL in a subexpression is still unsafe.
var writeKeywords = []string{
	"INSERT", "UPDATE", "DELETE", "DROP", "ALTER", "CREATE",
	"TRUNCATE", "MERGE", "GRANT", "REVOKE", "REPLACE", "EXEC",
	"CALL", "SET", "LOCK", "LOAD",
}

// Guard turns a natural-language question into a validated read-only
// SELECT against the one table it knows about.
type Guard struct {
	client    genai.Client
	fullTable string
	rowLimit  int
	logger    *zap.Logger
}

func NewGuard(client genai.Client, fullTable string, rowLimit int, logger *zap.Logger) *Guard {
	if rowLimit <= 0 {
		rowLimit = 50
	}
	return &Guard{
		client:    client,
		fullTable: fullTable,
		rowLimit:  rowLimit,
		logger:    logger,
	}
}

// Translate makes exactly one model call and returns guarded SQL or
// ErrUnsafeQuery. There is no second attempt.
func (g *Guard) Translate(ctx context.Context, question string) (GuardedQuery, error) {
	raw, err := g.client.Generate(ctx, genai.Request{
		System:      buildSystemPrompt(g.fullTable, g.rowLimit),
		Prompt:      userTurn(question),
		Temperature: searchTemperature,
	})
	if err != nil {
		return GuardedQuery{}, fmt.Errorf("sql generation: %w", err)
	}

	sql := sanitizeSQL(raw)
	if err := g.validate(sql); err != nil {
		g.logger.Warn("generated query rejected", zap.Error(err))
		g.logger.Debug("rejected query text", zap.String("sql", sql))
		return GuardedQuery{}, err
	}
	return GuardedQuery{sql: sql}, nil
}

// sanitizeSQL undoes the formatting habits models keep despite the prompt:
// markdown fences, a wrapping backtick pair, and commentary ahead of the
// statement. It cuts to the first SELECT and nothing more; it never
// rewrites what follows.
func sanitizeSQL(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```sql")
	s = strings.TrimPrefix(s, "```SQL")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if len(s) >= 2 && strings.HasPrefix(s, "`") && strings.HasSuffix(s, "`") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	if idx := strings.Index(strings.ToUpper(s), "SELECT"); idx > 0 {
		s = s[idx:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ";"))
}

func (g *Guard) validate(sql string) error {
	upper := strings.ToUpper(sql)

	if !strings.HasPrefix(upper, "SELECT") {
		return fmt.Errorf("%w: statement does not begin with SELECT", ErrUnsafeQuery)
	}
	if strings.Contains(sql, ";") {
		return fmt.Errorf("%w: multiple statements", ErrUnsafeQuery)
	}
	for _, kw := range writeKeywords {
		if containsKeyword(upper, kw) {
			return fmt.Errorf("%w: contains %s", ErrUnsafeQuery, strings.TrimSpace(kw))
		}
	}
	if !strings.Contains(strings.ToLower(sql), strings.ToLower(g.fullTable)) {
		return fmt.Errorf("%w: does not reference %s", ErrUnsafeQuery, g.fullTable)
	}
	return nil
}

// containsKeyword matches kw as a whole word so identifiers like
// created_at or OFFSET do not trip the CREATE and SET checks.
func containsKeyword(upper, kw string) bool {
	for start := 0; ; {
		idx := strings.Index(upper[start:], kw)
		if idx < 0 {
			return false
		}
		idx += start
		before := idx == 0 || !isWordByte(upper[idx-1])
		afterIdx := idx + len(kw)
		after := afterIdx >= len(upper) || !isWordByte(upper[afterIdx])
		if before && after {
			return true
		}
		start = idx + len(kw)
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
