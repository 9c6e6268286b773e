package repositories

import (
	"portfolio/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerSettingsRepository implements SettingsRepository using BadgerDB
type BadgerSettingsRepository struct {
	db *badger.DB
}

// NewBadgerSettingsRepository creates a new BadgerSettingsRepository
func NewBadgerSettingsRepository(db *badger.DB) *BadgerSettingsRepository {
	return &BadgerSettingsRepository{db: db}
}

// Get returns the stored settings or ErrNotFound
func (r *BadgerSettingsRepository) Get() (*models.Settings, error) {
	var settings models.Settings
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, []byte(SettingsKey), &settings)
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save overwrites the settings record
func (r *BadgerSettingsRepository) Save(settings *models.Settings) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return putEntity(txn, []byte(SettingsKey), settings)
	})
}
