package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"learnpath-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CourseLoader fetches course content from a backing store (e.g., document DB).
type CourseLoader interface {
	LoadCourse(ctx context.Context, courseID string) (domain.Course, error)
}

// CourseRepository caches course trees with TTL to avoid re-reading the full
// graph from the store on every navigation step.
type CourseRepository struct {
	loader CourseLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedCourse
}

type cachedCourse struct {
	course    domain.Course
	expiresAt time.Time
}

func NewCourseRepository(loader CourseLoader, ttl time.Duration) *CourseRepository {
	return &CourseRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedCourse),
	}
}

func (r *CourseRepository) GetCourse(ctx context.Context, courseID string) (domain.Course, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[courseID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.course, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(courseID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[courseID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.course, nil
		}
		r.mu.RUnlock()

		course, err := r.loader.LoadCourse(ctx, courseID)
		if err != nil {
			return domain.Course{}, err
		}

		r.mu.Lock()
		r.cache[courseID] = cachedCourse{
			course:    course,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return course, nil
	})
	if err != nil {
		return domain.Course{}, err
	}
	return result.(domain.Course), nil
}

// StaticCourseLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticCourseLoader struct {
	courses map[string]domain.Course
}

func NewStaticCourseLoader(courses map[string]domain.Course) *StaticCourseLoader {
	return &StaticCourseLoader{courses: courses}
}

func (l *StaticCourseLoader) LoadCourse(_ context.Context, courseID string) (domain.Course, error) {
	if course, ok := l.courses[courseID]; ok {
		return course, nil
	}
	return domain.Course{}, domain.ErrCourseNotFound
}

func (r *CourseRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
