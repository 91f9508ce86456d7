package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/travel-weather/internal/weather"
)

// Redis is a forecast cache shared between server instances.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get treats every redis failure as a miss so a cache outage only costs an
// upstream fetch.
func (r *Redis) Get(ctx context.Context, loc weather.Location) (weather.Forecast, bool) {
	key := Key(loc)
	raw, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return weather.Forecast{}, false
	} else if err != nil {
		log.WithFields(log.Fields{"key": key, "error": err}).Warn("redis get failed")
		return weather.Forecast{}, false
	}

	var f weather.Forecast
	if err := json.Unmarshal(raw, &f); err != nil {
		log.WithFields(log.Fields{"key": key, "error": err}).Warn("discarding undecodable cached forecast")
		return weather.Forecast{}, false
	}
	return f, true
}

func (r *Redis) Set(ctx context.Context, loc weather.Location, f weather.Forecast) {
	key := Key(loc)
	raw, err := json.Marshal(f)
	if err != nil {
		log.WithFields(log.Fields{"key": key, "error": err}).Warn("could not encode forecast for cache")
		return
	}
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		log.WithFields(log.Fields{"key": key, "error": err}).Warn("redis set failed")
	}
}

var _ weather.ForecastCache = (*Redis)(nil)
