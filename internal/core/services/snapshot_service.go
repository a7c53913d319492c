package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/models"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/repositories"
)

const snapshotTimeout = 30 * time.Second

// SnapshotService periodically copies every user's workspace payload
// into the snapshot table and prunes old copies.
type SnapshotService struct {
	wsRepo   repositories.WorkspaceRepository
	snapRepo repositories.SnapshotRepository
	schedule string
	keep     int
	cron     *cron.Cron
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(
	wsRepo repositories.WorkspaceRepository,
	snapRepo repositories.SnapshotRepository,
	schedule string,
	keep int,
) *SnapshotService {
	return &SnapshotService{
		wsRepo:   wsRepo,
		snapRepo: snapRepo,
		schedule: schedule,
		keep:     keep,
		cron:     cron.New(),
	}
}

// Start schedules the snapshot job.
func (s *SnapshotService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	slog.Info("snapshot job scheduled", "schedule", s.schedule, "keep", s.keep)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *SnapshotService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("snapshot job stopped")
}

func (s *SnapshotService) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	if err := s.SnapshotAll(ctx); err != nil {
		slog.Error("snapshot run failed", "error", err)
	}
}

// SnapshotAll snapshots every known workspace. A failure on one user
// is logged and does not stop the others.
func (s *SnapshotService) SnapshotAll(ctx context.Context) error {
	usernames, err := s.wsRepo.Usernames(ctx)
	if err != nil {
		return err
	}

	for _, username := range usernames {
		if err := s.snapshotUser(ctx, username); err != nil {
			slog.Error("snapshot failed", "username", username, "error", err)
		}
	}
	slog.Debug("snapshot run complete", "workspaces", len(usernames))
	return nil
}

func (s *SnapshotService) snapshotUser(ctx context.Context, username string) error {
	ws, err := s.wsRepo.Load(ctx, username)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(ws)
	if err != nil {
		return err
	}

	snap := &models.WorkspaceSnapshot{
		Username: username,
		Payload:  string(payload),
	}
	if err := s.snapRepo.Create(ctx, snap); err != nil {
		return err
	}
	return s.snapRepo.Prune(ctx, username, s.keep)
}
