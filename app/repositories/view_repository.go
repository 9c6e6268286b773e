package repositories

import (
	"encoding/binary"
	"errors"
	"time"

	"portfolio/app/models"

	"github.com/dgraph-io/badger/v4"
)

const dayLayout = "2006-01-02"

// maxConflictRetries bounds retries of counter updates that race.
const maxConflictRetries = 5

// BadgerViewRepository implements ViewRepository using BadgerDB
type BadgerViewRepository struct {
	db *badger.DB
}

// NewBadgerViewRepository creates a new BadgerViewRepository
func NewBadgerViewRepository(db *badger.DB) *BadgerViewRepository {
	return &BadgerViewRepository{db: db}
}

func viewsKey(day time.Time) []byte {
	return []byte(ViewsKeyPrefix + day.UTC().Format(dayLayout))
}

// Increment adds one view to day's counter
func (r *BadgerViewRepository) Increment(day time.Time) error {
	key := viewsKey(day)
	var err error
	for i := 0; i < maxConflictRetries; i++ {
		err = r.db.Update(func(txn *badger.Txn) error {
			count, err := readCounter(txn, key)
			if err != nil {
				return err
			}
			buf := make([]byte, 8)
			binary.BigEndian.PutUint64(buf, count+1)
			return txn.Set(key, buf)
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

// Range returns one entry per day starting at from, zero filled
func (r *BadgerViewRepository) Range(from time.Time, days int) ([]models.DayViews, error) {
	start := from.UTC().Truncate(24 * time.Hour)
	out := make([]models.DayViews, 0, days)
	err := r.db.View(func(txn *badger.Txn) error {
		for i := 0; i < days; i++ {
			day := start.AddDate(0, 0, i)
			count, err := readCounter(txn, viewsKey(day))
			if err != nil {
				return err
			}
			out = append(out, models.DayViews{Day: day, Views: int(count)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func readCounter(txn *badger.Txn, key []byte) (uint64, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var count uint64
	err = item.Value(func(val []byte) error {
		if len(val) == 8 {
			count = binary.BigEndian.Uint64(val)
		}
		return nil
	})
	return count, err
}
