package repositories

import (
	"portfolio/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerMessageRepository implements MessageRepository using BadgerDB
type BadgerMessageRepository struct {
	db *badger.DB
}

// NewBadgerMessageRepository creates a new BadgerMessageRepository
func NewBadgerMessageRepository(db *badger.DB) *BadgerMessageRepository {
	return &BadgerMessageRepository{db: db}
}

// Create stores a new message
func (r *BadgerMessageRepository) Create(message *models.Message) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, MessageSeqKey)
		if err != nil {
			return err
		}
		message.ID = id

		return putEntity(txn, entityKey(MessageKeyPrefix, id), message)
	})
}

// GetByID retrieves a message by ID
func (r *BadgerMessageRepository) GetByID(id int) (*models.Message, error) {
	var message models.Message
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(MessageKeyPrefix, id), &message)
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// List retrieves all messages in id order
func (r *BadgerMessageRepository) List() ([]*models.Message, error) {
	var messages []*models.Message
	err := scanPrefix(r.db, MessageKeyPrefix, func(val []byte) error {
		var message models.Message
		if err := unmarshalEntity(val, &message); err != nil {
			return err
		}
		messages = append(messages, &message)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Update updates an existing message
func (r *BadgerMessageRepository) Update(message *models.Message) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(MessageKeyPrefix, message.ID)
		if err := mustExist(txn, key); err != nil {
			return err
		}
		return putEntity(txn, key, message)
	})
}

// Delete deletes a message by ID
func (r *BadgerMessageRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(MessageKeyPrefix, id)
		if err := mustExist(txn, key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
