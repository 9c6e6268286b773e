package repositories

import (
	"errors"
	"strconv"

	"portfolio/app/models"

	"github.com/dgraph-io/badger/v4"
)

// ErrSlugTaken is returned when a post would reuse another post's slug.
var ErrSlugTaken = errors.New("slug already in use")

// BadgerBlogRepository implements BlogRepository using BadgerDB. Slugs are
// indexed under their own prefix so lookups by slug do not scan.
type BadgerBlogRepository struct {
	db *badger.DB
}

// NewBadgerBlogRepository creates a new BadgerBlogRepository
func NewBadgerBlogRepository(db *badger.DB) *BadgerBlogRepository {
	return &BadgerBlogRepository{db: db}
}

func slugKey(slug string) []byte {
	return []byte(PostSlugKeyPrefix + slug)
}

// slugOwner returns the id owning slug, or 0 when it is free.
func slugOwner(txn *badger.Txn, slug string) (int, error) {
	item, err := txn.Get(slugKey(slug))
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var id int
	err = item.Value(func(val []byte) error {
		id, err = strconv.Atoi(string(val))
		return err
	})
	return id, err
}

// Create creates a new post
func (r *BadgerBlogRepository) Create(post *models.BlogPost) error {
	return r.db.Update(func(txn *badger.Txn) error {
		owner, err := slugOwner(txn, post.Slug)
		if err != nil {
			return err
		}
		if owner != 0 {
			return ErrSlugTaken
		}

		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id

		if err := txn.Set(slugKey(post.Slug), []byte(strconv.Itoa(id))); err != nil {
			return err
		}
		return putEntity(txn, entityKey(PostKeyPrefix, id), post)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerBlogRepository) GetByID(id int) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(PostKeyPrefix, id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves a post through the slug index
func (r *BadgerBlogRepository) GetBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := slugOwner(txn, slug)
		if err != nil {
			return err
		}
		if id == 0 {
			return ErrNotFound
		}
		return getEntity(txn, entityKey(PostKeyPrefix, id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves all posts in id order
func (r *BadgerBlogRepository) List() ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	err := scanPrefix(r.db, PostKeyPrefix, func(val []byte) error {
		var post models.BlogPost
		if err := unmarshalEntity(val, &post); err != nil {
			return err
		}
		posts = append(posts, &post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update updates an existing post and moves its slug index entry when
// the slug changed.
func (r *BadgerBlogRepository) Update(post *models.BlogPost) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(PostKeyPrefix, post.ID)
		var existing models.BlogPost
		if err := getEntity(txn, key, &existing); err != nil {
			return err
		}

		if existing.Slug != post.Slug {
			owner, err := slugOwner(txn, post.Slug)
			if err != nil {
				return err
			}
			if owner != 0 && owner != post.ID {
				return ErrSlugTaken
			}
			if err := txn.Delete(slugKey(existing.Slug)); err != nil {
				return err
			}
			if err := txn.Set(slugKey(post.Slug), []byte(strconv.Itoa(post.ID))); err != nil {
				return err
			}
		}
		return putEntity(txn, key, post)
	})
}

// Delete deletes a post and its slug index entry
func (r *BadgerBlogRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(PostKeyPrefix, id)
		var existing models.BlogPost
		if err := getEntity(txn, key, &existing); err != nil {
			return err
		}
		if err := txn.Delete(slugKey(existing.Slug)); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
