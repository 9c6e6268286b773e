package repositories

import (
	"portfolio/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerProjectRepository implements ProjectRepository using BadgerDB
type BadgerProjectRepository struct {
	db *badger.DB
}

// NewBadgerProjectRepository creates a new BadgerProjectRepository
func NewBadgerProjectRepository(db *badger.DB) *BadgerProjectRepository {
	return &BadgerProjectRepository{db: db}
}

// Create creates a new project
func (r *BadgerProjectRepository) Create(project *models.Project) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, ProjectSeqKey)
		if err != nil {
			return err
		}
		project.ID = id

		return putEntity(txn, entityKey(ProjectKeyPrefix, id), project)
	})
}

// GetByID retrieves a project by ID
func (r *BadgerProjectRepository) GetByID(id int) (*models.Project, error) {
	var project models.Project
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(ProjectKeyPrefix, id), &project)
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves all projects in id order
func (r *BadgerProjectRepository) List() ([]*models.Project, error) {
	var projects []*models.Project
	err := scanPrefix(r.db, ProjectKeyPrefix, func(val []byte) error {
		var project models.Project
		if err := unmarshalEntity(val, &project); err != nil {
			return err
		}
		projects = append(projects, &project)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates an existing project
func (r *BadgerProjectRepository) Update(project *models.Project) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(ProjectKeyPrefix, project.ID)
		if err := mustExist(txn, key); err != nil {
			return err
		}
		return putEntity(txn, key, project)
	})
}

// Delete deletes a project by ID
func (r *BadgerProjectRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(ProjectKeyPrefix, id)
		if err := mustExist(txn, key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
