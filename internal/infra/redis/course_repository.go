package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"learnpath-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CourseLoader fetches course content from a backing store (e.g., document DB).
type CourseLoader interface {
	LoadCourse(ctx context.Context, courseID string) (domain.Course, error)
}

// CourseRepository caches whole course trees in Redis and falls back to a
// loader on cache miss. The full document is cached rather than a projection
// because traversal needs every level of the tree:
// SET course:{courseID}:graph {json}
type CourseRepository struct {
	client *redis.Client
	loader CourseLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCourseRepository(client *redis.Client, loader CourseLoader, ttl time.Duration) *CourseRepository {
	return &CourseRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CourseRepository) GetCourse(ctx context.Context, courseID string) (domain.Course, error) {
	key := r.graphKey(courseID)

	if course, ok := r.cached(ctx, key); ok {
		return course, nil
	}

	result, err, _ := r.sf.Do(courseID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if course, ok := r.cached(ctx, key); ok {
			return course, nil
		}

		course, err := r.loader.LoadCourse(ctx, courseID)
		if err != nil {
			return domain.Course{}, err
		}

		if data, err := json.Marshal(course); err == nil {
			// Cache write is best-effort; a miss just re-hits the loader.
			_ = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		}
		return course, nil
	})
	if err != nil {
		return domain.Course{}, err
	}
	return result.(domain.Course), nil
}

func (r *CourseRepository) cached(ctx context.Context, key string) (domain.Course, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil || len(data) == 0 {
		return domain.Course{}, false
	}
	var course domain.Course
	if err := json.Unmarshal(data, &course); err != nil {
		return domain.Course{}, false
	}
	return course, true
}

func (r *CourseRepository) graphKey(courseID string) string {
	return "course:" + courseID + ":graph"
}

func (r *CourseRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
