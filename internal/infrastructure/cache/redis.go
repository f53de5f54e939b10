// Package cache implementa el caché de los ajustes del negocio sobre Redis.
// El singleton de ajustes se lee en cada generación de documentos; cachearlo
// evita un round-trip a Postgres por documento. Cualquier fallo de Redis
// degrada en silencio a la lectura directa de DB.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andresjj98/appagencia-api/internal/application/settings"
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/pkg/config"
	"github.com/andresjj98/appagencia-api/pkg/logger"
)

const (
	settingsKey = "settings:business"
	settingsTTL = 5 * time.Minute
)

var _ settings.Cache = (*RedisCache)(nil)

// RedisCache caché de ajustes. client puede ser nil (Redis no configurado):
// todas las operaciones degradan a no-op.
type RedisCache struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisCache conecta a Redis si hay dirección configurada; si no, devuelve
// un caché inerte. El ping de verificación es best-effort.
func NewRedisCache(cfg config.CacheConfig, log *logger.Logger) *RedisCache {
	if cfg.Addr == "" {
		return &RedisCache{log: log}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis no responde; caché de ajustes desactivado")
		return &RedisCache{log: log}
	}
	return &RedisCache{client: client, log: log}
}

// GetSettings lee los ajustes del caché. (nil, false) en miss o fallo.
func (c *RedisCache) GetSettings(ctx context.Context) (*entity.BusinessSettings, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, settingsKey).Bytes()
	if err != nil {
		return nil, false
	}
	var s entity.BusinessSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return &s, true
}

// SetSettings guarda los ajustes con TTL corto.
func (c *RedisCache) SetSettings(ctx context.Context, s *entity.BusinessSettings) {
	if c.client == nil || s == nil {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, settingsKey, raw, settingsTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("redis: no se pudo cachear los ajustes")
	}
}

// InvalidateSettings borra la entrada tras una actualización.
func (c *RedisCache) InvalidateSettings(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, settingsKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("redis: no se pudo invalidar el caché de ajustes")
	}
}

// Close cierra la conexión si existe.
func (c *RedisCache) Close() {
	if c.client != nil {
		_ = c.client.Close()
	}
}
