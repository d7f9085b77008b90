package app

import (
	"context"
	"fmt"
	"time"

	pkgcron "github.com/folio-space/core/internal/pkg/cron"
	sessionpkg "github.com/folio-space/core/internal/pkg/session"
)

// Sessions stay queryable for a week after expiry so the owner can review
// recent device activity before rows disappear.
const sessionPurgeGrace = 7 * 24 * time.Hour

// registerCronJobs registers all scheduled background jobs.
func (a *App) registerCronJobs() {
	cronLogger := a.logger.Named("cron")

	a.sched.Register(pkgcron.Job{
		Name:        "cleanup_orphan_uploads",
		Description: "delete uploads that no content ever referenced",
		Every:       24 * time.Hour,
		Run: func(ctx context.Context) error {
			deleted, err := a.fileSvc.CleanupOrphans(ctx)
			if err != nil {
				return err
			}
			if deleted > 0 {
				cronLogger.Info(fmt.Sprintf("orphan upload cleanup removed %d files", deleted))
			}
			return nil
		},
	})

	a.sched.Register(pkgcron.Job{
		Name:        "cleanup_sessions",
		Description: "purge long-expired and revoked sessions",
		Every:       24 * time.Hour,
		Run: func(ctx context.Context) error {
			purged, err := sessionpkg.PurgeExpired(a.db, sessionPurgeGrace)
			if err != nil {
				return err
			}
			if purged > 0 {
				cronLogger.Info(fmt.Sprintf("session purge removed %d rows", purged))
			}
			return nil
		},
	})
}
