package screen

import (
	"context"
	"log/slog"

	"github.com/mmcdole/purse/internal/domain"
)

// ResolvePrivileged reports whether the signed-in account may keep an offline
// copy of its friends. A failed lookup counts as not privileged.
func ResolvePrivileged(ctx context.Context, client domain.SessionClient, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		return false
	}

	session, err := client.LoadSession(ctx)
	if err != nil {
		logger.Warn("session lookup failed, using standard screens", "error", err)
		return false
	}

	logger.Debug("resolved session", "user", session.Username, "premium", session.Premium)
	return session.Premium
}
