package repositories

import (
	"testing"

	"portfolio/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore returns an in-memory store closed at the end of the test.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetNextID(t *testing.T) {
	store := openTestStore(t)
	db := store.DB()

	t.Run("first ID", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			id, err := getNextID(txn, ProjectSeqKey)
			assert.NoError(t, err)
			assert.Equal(t, 1, id)
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("sequential IDs", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			for i := 2; i <= 5; i++ {
				id, err := getNextID(txn, ProjectSeqKey)
				assert.NoError(t, err)
				assert.Equal(t, i, id)
			}
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("different sequence keys", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			messageID, err := getNextID(txn, MessageSeqKey)
			assert.NoError(t, err)
			assert.Equal(t, 1, messageID, "Message sequence should start from 1")
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("persistence", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			id, err := getNextID(txn, "test:seq")
			assert.NoError(t, err)
			assert.Equal(t, 1, id)
			return nil
		})
		assert.NoError(t, err)

		// Second transaction should continue from last ID
		err = db.Update(func(txn *badger.Txn) error {
			id, err := getNextID(txn, "test:seq")
			assert.NoError(t, err)
			assert.Equal(t, 2, id)
			return nil
		})
		assert.NoError(t, err)
	})
}

func TestEntityKeyOrdering(t *testing.T) {
	assert.Equal(t, "project:0000000002", string(entityKey(ProjectKeyPrefix, 2)))
	assert.Less(t, string(entityKey(PostKeyPrefix, 9)), string(entityKey(PostKeyPrefix, 10)))
}

func TestMarshalEntity(t *testing.T) {
	t.Run("marshal project", func(t *testing.T) {
		project := &models.Project{ID: 1, Title: "Test Project", Category: "web"}

		data, err := marshalEntity(project)
		assert.NoError(t, err)
		assert.NotEmpty(t, data)

		var unmarshaled models.Project
		err = unmarshalEntity(data, &unmarshaled)
		assert.NoError(t, err)
		assert.Equal(t, project.ID, unmarshaled.ID)
		assert.Equal(t, project.Title, unmarshaled.Title)
		assert.Equal(t, project.Category, unmarshaled.Category)
	})

	t.Run("marshal invalid entity", func(t *testing.T) {
		invalidEntity := struct {
			Ch chan int
		}{
			Ch: make(chan int),
		}

		_, err := marshalEntity(invalidEntity)
		assert.Error(t, err)
	})
}

func TestUnmarshalEntity(t *testing.T) {
	t.Run("unmarshal message", func(t *testing.T) {
		data := []byte(`{"id":1,"name":"John Doe","email":"john@example.com","message":"Hello","read":true}`)
		var message models.Message
		err := unmarshalEntity(data, &message)
		assert.NoError(t, err)
		assert.Equal(t, 1, message.ID)
		assert.Equal(t, "John Doe", message.Name)
		assert.Equal(t, "Hello", message.Body)
		assert.True(t, message.Read)
	})

	t.Run("unmarshal invalid JSON", func(t *testing.T) {
		var project models.Project
		err := unmarshalEntity([]byte(`{"id":1,invalid json}`), &project)
		assert.Error(t, err)
	})

	t.Run("unmarshal into nil", func(t *testing.T) {
		err := unmarshalEntity([]byte(`{"id":1}`), nil)
		assert.Error(t, err)
	})
}
