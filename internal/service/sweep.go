package service

import (
	"time"

	"github.com/evrtek/geobeastProdV1-sub000/internal/constants"
	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
	"github.com/evrtek/geobeastProdV1-sub000/internal/logging"
	"github.com/evrtek/geobeastProdV1-sub000/internal/storage"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// ExpireStaleInvitations transitions pending invitations past the TTL to
// expired. Reads do not depend on this running: every pending-invitation
// read independently re-filters by elapsed time.
func ExpireStaleInvitations(repo storage.Repository, ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	battles, err := repo.FindStalePending(cutoff)
	if err != nil {
		logging.Error("invitation sweep query failed", err, nil)
		return 0
	}
	expired := 0
	for i := range battles {
		b := &battles[i]
		b.Status = game.StatusExpired
		if err := repo.UpdateBattle(b); err != nil {
			logging.Error("failed to expire invitation", err, logging.Fields{constants.LogFieldBattleID: b.ID})
			continue
		}
		expired++
	}
	if expired > 0 {
		logging.Info("stale invitations expired", logging.Fields{constants.LogFieldCount: expired})
	}
	return expired
}

// StartInvitationSweep schedules the periodic expiry job. The returned
// scheduler keeps running until Shutdown is called.
func StartInvitationSweep(repo storage.Repository, ttl, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	workerID := uuid.NewString()
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ExpireStaleInvitations(repo, ttl)
		}),
	)
	if err != nil {
		return nil, err
	}
	sched.Start()
	logging.Info("invitation sweep started", logging.Fields{
		constants.LogFieldWorkerID: workerID,
		"interval":                 interval.String(),
	})
	return sched, nil
}
