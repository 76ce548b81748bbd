package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/atarasenko/shortlink/internal/storage"
)

const redisKeyPrefix = "shortlink:"

// insertScript creates the record hash atomically: HSETNX on original_url
// gates uniqueness, and the remaining fields are written in the same script
// so no partial hash is ever observable. The clicks field is deliberately
// not written; HINCRBY creates it on the first redirect and readers treat a
// missing field as 0, so an increment that lands right after the insert can
// never be overwritten.
var insertScript = redis.NewScript(`
if redis.call("HSETNX", KEYS[1], "original_url", ARGV[1]) == 1 then
	redis.call("HSET", KEYS[1], "id", ARGV[2], "short_id", ARGV[3], "created_at", ARGV[4])
	return 1
end
return 0
`)

// RedisRepository implements the service storage interface on Redis, one hash
// per record. The click counter is incremented with HINCRBY. Records are
// never deleted, so an existence check followed by HINCRBY cannot race with a
// removal.
type RedisRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func InitRedis(addr string, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to ping redis", zap.Error(err))
	}

	return client
}

func CreateRedisRepository(client *redis.Client, logger *zap.Logger) *RedisRepository {
	return &RedisRepository{
		client: client,
		logger: logger,
	}
}

func (r *RedisRepository) Insert(ctx context.Context, shortID, originalURL string) (*storage.ShortLink, error) {
	record := storage.ShortLink{
		ID:          uuid.NewString(),
		ShortID:     shortID,
		OriginalURL: originalURL,
		Clicks:      0,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := insertScript.Run(ctx, r.client,
		[]string{redisKeyPrefix + shortID},
		record.OriginalURL, record.ID, record.ShortID, record.CreatedAt.Format(time.RFC3339Nano),
	).Int()
	if err != nil {
		r.logger.Error("insert failed", zap.String("shortID", shortID), zap.Error(err))
		return nil, err
	}
	if created == 0 {
		return nil, storage.ErrDuplicateKey
	}

	return &record, nil
}

func (r *RedisRepository) FindByShortID(ctx context.Context, shortID string) (*storage.ShortLink, error) {
	fields, err := r.client.HGetAll(ctx, redisKeyPrefix+shortID).Result()
	if err != nil {
		r.logger.Error("lookup failed", zap.String("shortID", shortID), zap.Error(err))
		return nil, err
	}
	if len(fields) == 0 {
		return nil, storage.ErrNotFound
	}

	return r.recordFromFields(shortID, fields)
}

func (r *RedisRepository) IncrementAndFetch(ctx context.Context, shortID string) (*storage.ShortLink, error) {
	key := redisKeyPrefix + shortID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("increment failed", zap.String("shortID", shortID), zap.Error(err))
		return nil, err
	}
	if exists == 0 {
		return nil, storage.ErrNotFound
	}

	clicks, err := r.client.HIncrBy(ctx, key, "clicks", 1).Result()
	if err != nil {
		r.logger.Error("increment failed", zap.String("shortID", shortID), zap.Error(err))
		return nil, err
	}

	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		r.logger.Error("increment failed", zap.String("shortID", shortID), zap.Error(err))
		return nil, err
	}

	record, err := r.recordFromFields(shortID, fields)
	if err != nil {
		return nil, err
	}

	// HGETALL may observe clicks from a later concurrent increment; report the
	// value HINCRBY returned for this call.
	record.Clicks = clicks
	return record, nil
}

func (r *RedisRepository) recordFromFields(shortID string, fields map[string]string) (*storage.ShortLink, error) {
	// The clicks field only exists once the first redirect has incremented it.
	var clicks int64
	if v, ok := fields["clicks"]; ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		clicks = parsed
	}

	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, err
	}

	return &storage.ShortLink{
		ID:          fields["id"],
		ShortID:     shortID,
		OriginalURL: fields["original_url"],
		Clicks:      clicks,
		CreatedAt:   createdAt,
	}, nil
}

func (r *RedisRepository) PingContext(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
