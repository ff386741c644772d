package distributed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"scm-gateway/internal/config"
	"scm-gateway/internal/metrics"
)

const leaderKey = "scm-gateway:sync-leader"

// Election elects one replica to run the leader-only jobs, using a redis key with a TTL.
type Election struct {
	Redis      *redis.Client
	InstanceID string // Unique identifier
	TTL        time.Duration
	Logger     *slog.Logger
	isLeader   bool
	mu         sync.RWMutex
}

func (e *Election) IsLeader() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isLeader
}

// CheckInterval is how often leadership is renewed and checked.
func (e *Election) CheckInterval() time.Duration {
	if e.TTL <= 0 {
		return config.DefaultDistributedConfig.TTL / 3
	}
	return e.TTL / 3
}

func (e *Election) campaign(ctx context.Context) {
	ok, err := e.Redis.SetNX(ctx, leaderKey, e.InstanceID, e.TTL).Result()
	if err != nil {
		e.Logger.Error("failed to campaign for leadership", "error", err, "instance", e.InstanceID)
		e.setLeader(false)
		return
	}

	if !ok {
		currentLeader, err := e.Redis.Get(ctx, leaderKey).Result()
		ok = err == nil && currentLeader == e.InstanceID
		if ok {
			e.Redis.Expire(ctx, leaderKey, e.TTL)
		}
	}

	e.setLeader(ok)
}

func (e *Election) setLeader(leader bool) {
	e.mu.Lock()
	wasLeader := e.isLeader
	e.isLeader = leader
	e.mu.Unlock()

	if leader && !wasLeader {
		e.Logger.Info("became leader", "instance", e.InstanceID)
		metrics.IsLeader.Set(1)
		metrics.LeadershipChanges.Inc()
	} else if !leader && wasLeader {
		e.Logger.Info("lost leadership", "instance", e.InstanceID)
		metrics.IsLeader.Set(0)
		metrics.LeadershipChanges.Inc()
	}
}

// Start campaigns until ctx is done, then resigns.
func (e *Election) Start(ctx context.Context) {
	ticker := time.NewTicker(e.CheckInterval())
	defer ticker.Stop()

	e.campaign(ctx)

	for {
		select {
		case <-ctx.Done():
			resignCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			e.resign(resignCtx)
			cancel()
			return
		case <-ticker.C:
			e.campaign(ctx)
		}
	}
}

func (e *Election) resign(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isLeader {
		return
	}

	script := `
        if redis.call("get", KEYS[1]) == ARGV[1] then
            return redis.call("del", KEYS[1])
        end
        return 0
    `

	_, err := redis.NewScript(script).Run(ctx, e.Redis, []string{leaderKey}, e.InstanceID).Result()
	if err != nil {
		e.Logger.Error("failed to resign leadership", "error", err, "instance", e.InstanceID)
	} else {
		e.Logger.Info("resigned leadership", "instance", e.InstanceID)
		metrics.IsLeader.Set(0)
	}

	e.isLeader = false
}
