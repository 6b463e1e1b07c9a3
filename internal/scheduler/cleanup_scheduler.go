package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
)

// CleanupScheduler purges expired admin sessions and stale refresh tokens
// on a nightly schedule. Rows are soft-invalidated at auth time; this job
// keeps the tables from growing without bound.
type CleanupScheduler struct {
	cron        *cron.Cron
	sessionRepo repository.AdminSessionRepository
	tokenRepo   repository.RefreshTokenRepository
}

func NewCleanupScheduler(
	sessionRepo repository.AdminSessionRepository,
	tokenRepo repository.RefreshTokenRepository,
) *CleanupScheduler {
	return &CleanupScheduler{
		cron:        cron.New(),
		sessionRepo: sessionRepo,
		tokenRepo:   tokenRepo,
	}
}

// Start registers the nightly purge at 02:00 server time
func (s *CleanupScheduler) Start() error {
	_, err := s.cron.AddFunc("0 2 * * *", s.runCleanup)
	if err != nil {
		logger.Error("Failed to register cleanup job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cleanup scheduler started (daily at 02:00)", nil)
	return nil
}

func (s *CleanupScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Cleanup scheduler stopped", nil)
}

func (s *CleanupScheduler) runCleanup() {
	logger.Info("Starting scheduled auth cleanup", nil)

	sessions, err := s.sessionRepo.PurgeStale()
	if err != nil {
		logger.Error("Failed to purge stale admin sessions", err)
	}

	tokens, err := s.tokenRepo.PurgeStale()
	if err != nil {
		logger.Error("Failed to purge stale refresh tokens", err)
	}

	logger.Info("Scheduled auth cleanup finished", map[string]interface{}{
		"sessions_purged": sessions,
		"tokens_purged":   tokens,
	})
}
