package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrLockNotAcquired is returned when another booking request currently holds
// the provider's calendar for the same date.
var ErrLockNotAcquired = errors.New("provider calendar is locked by another booking, please retry")

// releaseLockScript deletes the lock key only if it still holds our token, so
// a slow request cannot release a lock a later request re-acquired.
// The Redis Go client automatically uses EVALSHA after the first call.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	bookingLockKeyPrefix = "booking:lock:"

	// Lock lifetime bounds the critical section; a crashed holder cannot
	// wedge the provider's calendar for longer than this.
	defaultLockTTL = 5 * time.Second
)

// BookingLocker serializes the conflict-check + insert critical section per
// (provider, date). Two concurrent booking requests for overlapping intervals
// on the same provider cannot both pass the conflict check while one of them
// holds the lock; the slot unique key and the conditional slot claim remain
// the database-level backstop.
type BookingLocker interface {
	WithProviderDateLock(ctx context.Context, providerID uuid.UUID, date time.Time, fn func(ctx context.Context) error) error
}

type bookingLockService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	lockTTL     time.Duration
}

func NewBookingLockService(redisClient *redis.Client, log *logrus.Logger) BookingLocker {
	return &bookingLockService{
		redisClient: redisClient,
		log:         log,
		lockTTL:     defaultLockTTL,
	}
}

func (s *bookingLockService) WithProviderDateLock(ctx context.Context, providerID uuid.UUID, date time.Time, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("%s%s:%s", bookingLockKeyPrefix, providerID.String(), date.Format("2006-01-02"))
	token := uuid.New().String()

	ok, err := s.redisClient.SetNX(ctx, key, token, s.lockTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire booking lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		// Release on a fresh context so an already-cancelled request still
		// unlocks the calendar.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseLockScript.Run(releaseCtx, s.redisClient, []string{key}, token).Err(); err != nil {
			s.log.Warnf("Failed to release booking lock %s (expires in %s): %+v", key, s.lockTTL, err)
		}
	}()

	return fn(ctx)
}
