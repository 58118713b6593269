package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"threadboard/internal/repository"
)

// translate maps sqlite constraint failures onto repository sentinels so callers
// never have to inspect driver messages.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		if field := uniqueField(msg); field != "" {
			return fmt.Errorf("%s %w", field, repository.ErrConflict)
		}
		return fmt.Errorf("%s: %w", op, repository.ErrConflict)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		if strings.HasPrefix(op, "delete") {
			return fmt.Errorf("%s: %w", op, repository.ErrReferenced)
		}
		return fmt.Errorf("%s: %w", op, repository.ErrInvalidReference)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// uniqueField extracts "email" from "UNIQUE constraint failed: users.email (2067)".
func uniqueField(msg string) string {
	const marker = "UNIQUE constraint failed: "
	idx := strings.Index(msg, marker)
	if idx < 0 {
		return ""
	}
	rest := msg[idx+len(marker):]
	if end := strings.IndexAny(rest, " ,("); end >= 0 {
		rest = rest[:end]
	}
	if dot := strings.LastIndex(rest, "."); dot >= 0 {
		rest = rest[dot+1:]
	}
	return rest
}

func affectedOne(res sql.Result, op string) error {
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if aff == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}
