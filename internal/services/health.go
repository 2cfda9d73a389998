package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"brocante_back_end/internal/logger"
)

const (
	healthKey    = "moderation:health"
	healthWindow = 5 * time.Minute
	probeTimeout = 10 * time.Second
)

// HealthChecker garde le dernier état connu du service de modération et ne le
// sonde pas plus d'une fois par fenêtre de 5 minutes. L'état vit dans Redis
// (partagé entre réplicas) avec un repli en mémoire si Redis est absent.
type HealthChecker struct {
	redis  *redis.Client
	client *ModerationClient

	mu        sync.Mutex
	lastCheck time.Time
	lastOK    bool
}

func NewHealthChecker(rdb *redis.Client, client *ModerationClient) *HealthChecker {
	return &HealthChecker{redis: rdb, client: client}
}

// Available renvoie l'état courant, en sondant le service si la fenêtre a expiré
func (h *HealthChecker) Available(ctx context.Context) bool {
	if cached, ok := h.cachedState(ctx); ok {
		return cached
	}

	pctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := h.client.Probe(pctx)
	ok := err == nil
	if !ok {
		logger.Log.Warnw("⚠️ Service de modération injoignable", "error", err)
	}

	h.record(ctx, ok)
	return ok
}

// MarkDown enregistre une panne constatée en dehors d'une sonde (appel de
// modération en échec transport), pour toute la fenêtre courante.
func (h *HealthChecker) MarkDown(ctx context.Context) {
	h.record(ctx, false)
}

func (h *HealthChecker) cachedState(ctx context.Context) (state, ok bool) {
	if h.redis != nil {
		val, err := h.redis.Get(ctx, healthKey).Result()
		if err == nil {
			return val == "ok", true
		}
		if errors.Is(err, redis.Nil) {
			// fenêtre expirée : il faut re-sonder
			return false, false
		}
		// Redis en panne : on retombe sur la fenêtre mémoire locale pour ne
		// pas sonder l'amont à chaque requête
		logger.Log.Warnw("⚠️ Lecture de l'état modération dans Redis impossible — repli mémoire", "error", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.lastCheck.IsZero() && time.Since(h.lastCheck) < healthWindow {
		return h.lastOK, true
	}
	return false, false
}

func (h *HealthChecker) record(ctx context.Context, ok bool) {
	h.mu.Lock()
	h.lastCheck = time.Now()
	h.lastOK = ok
	h.mu.Unlock()

	if h.redis != nil {
		val := "down"
		if ok {
			val = "ok"
		}
		if err := h.redis.Set(ctx, healthKey, val, healthWindow).Err(); err != nil {
			logger.Log.Warnw("⚠️ Impossible d'enregistrer l'état modération dans Redis", "error", err)
		}
	}
}
