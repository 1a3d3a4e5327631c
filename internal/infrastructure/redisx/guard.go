// Package redisx guardia de importación sobre Redis: un lock corto por grupo (channel, external_id).
package redisx

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// KeyImport formato de la llave del lock por grupo.
const KeyImport = "import:%s:%s"

// releaseScript borra el lock solo si sigue siendo nuestro (el TTL pudo vencer y otro tomarlo).
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// New crea el cliente y verifica la conexión.
func New(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return rdb, nil
}

// ImportKey llave del lock para un grupo de importación. Cada parte va escapada (":" -> "%3A"),
// así ("A:B", "C") y ("A", "B:C") no comparten llave.
func ImportKey(channel, externalID string) string {
	return fmt.Sprintf(KeyImport, url.QueryEscape(channel), url.QueryEscape(externalID))
}

// Guard implementa la guardia de importación con SET NX + TTL.
type Guard struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewGuard construye la guardia. ttl acota cuánto sobrevive un lock si el proceso muere.
func NewGuard(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *Guard {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Guard{rdb: rdb, ttl: ttl, log: log.With().Str("component", "redis-guard").Logger()}
}

// Acquire intenta tomar el lock del grupo. acquired=false si otra importación lo tiene.
func (g *Guard) Acquire(ctx context.Context, channel, externalID string) (func(), bool, error) {
	key := ImportKey(channel, externalID)
	token := uuid.NewString()
	ok, err := g.rdb.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis: lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		// ctx propio: el de la petición pudo cancelarse
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, g.rdb, []string{key}, token).Err(); err != nil {
			g.log.Warn().Err(err).Str("key", key).Msg("liberar lock")
		}
	}
	return release, true, nil
}
