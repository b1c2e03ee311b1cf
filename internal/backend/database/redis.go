package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "defect_image:"

// RedisDatabase stores each record as one hash, written with a single HSET
type RedisDatabase struct {
	client *redis.Client
}

// NewRedisDatabase accepts a redis:// URL
func NewRedisDatabase(connectionString string) (DatabaseService, error) {
	opts, err := redis.ParseURL(connectionString)
	if err != nil {
		return nil, fmt.Errorf("invalid redis connection string: %w", err)
	}
	return &RedisDatabase{client: redis.NewClient(opts)}, nil
}

// CreateDatabase only verifies connectivity; hashes need no schema
func (r *RedisDatabase) CreateDatabase() error {
	return r.client.Ping(context.Background()).Err()
}

func (r *RedisDatabase) DoesDatabaseExist() bool {
	return r.client.Ping(context.Background()).Err() == nil
}

func (r *RedisDatabase) Close() error {
	return r.client.Close()
}

func (r *RedisDatabase) CreateDefectImage(ctx context.Context, image *DefectImage) (string, error) {
	if image == nil {
		return "", errors.New("defect image must not be nil")
	}
	id, err := generateID()
	if err != nil {
		return "", err
	}

	err = r.client.HSet(ctx, redisKeyPrefix+id,
		"id", id,
		"defect_name", image.DefectName,
		"new_defect_image", nonNil(image.NewDefectImage),
		"harigami_defect_image", nonNil(image.HarigamiDefectImage),
		"previous_defect_image", nonNil(image.PreviousDefectImage),
		"repaired_defect_image", nonNil(image.RepairedDefectImage),
	).Err()
	if err != nil {
		return "", fmt.Errorf("failed to store defect image: %w", err)
	}
	return id, nil
}

func (r *RedisDatabase) GetDefectImageByID(ctx context.Context, id string) (*DefectImage, error) {
	fields, err := r.client.HGetAll(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load defect image: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrImageNotFound
	}

	return &DefectImage{
		ID:                  fields["id"],
		DefectName:          fields["defect_name"],
		NewDefectImage:      []byte(fields["new_defect_image"]),
		HarigamiDefectImage: []byte(fields["harigami_defect_image"]),
		PreviousDefectImage: []byte(fields["previous_defect_image"]),
		RepairedDefectImage: []byte(fields["repaired_defect_image"]),
	}, nil
}
