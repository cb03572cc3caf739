// Package catalog keeps the books served by the HTTP server.
//
// Books and the tables inside them are not safe for concurrent use. The
// catalog hands out books only through View and Update, which hold its lock
// for the duration of the callback.
package catalog

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/gridbook/internal/sheet"
)

var (
	// ErrBookNotFound is returned for an unknown book ID.
	ErrBookNotFound = errors.New("book not found")

	// ErrSheetNotFound is returned for an unknown sheet name.
	ErrSheetNotFound = errors.New("sheet not found")
)

// Entry describes a stored book.
type Entry struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Sheets  []string  `json:"sheets"`
	Source  string    `json:"source"`
	Created time.Time `json:"created"`
}

type record struct {
	entry Entry
	book  *sheet.Book
}

// Catalog is a concurrency-safe set of books keyed by ID.
type Catalog struct {
	mu    sync.RWMutex
	books map[uuid.UUID]*record
	now   func() time.Time
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		books: make(map[uuid.UUID]*record),
		now:   time.Now,
	}
}

// Add stores b and returns its entry. source describes where the book came
// from ("dir", "upload", "query").
func (c *Catalog) Add(b *sheet.Book, source string) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := &record{
		entry: Entry{
			ID:      uuid.New(),
			Name:    b.Name,
			Source:  source,
			Created: c.now(),
		},
		book: b,
	}
	c.books[rec.entry.ID] = rec
	return rec.describe()
}

// List returns all entries, oldest first.
func (c *Catalog) List() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, 0, len(c.books))
	for _, rec := range c.books {
		out = append(out, rec.describe())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.Before(out[j].Created)
		}
		return strings.Compare(out[i].ID.String(), out[j].ID.String()) < 0
	})
	return out
}

// Get returns the entry for id.
func (c *Catalog) Get(id uuid.UUID) (Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.books[id]
	if !ok {
		return Entry{}, ErrBookNotFound
	}
	return rec.describe(), nil
}

// Remove deletes the book with id.
func (c *Catalog) Remove(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.books[id]; !ok {
		return ErrBookNotFound
	}
	delete(c.books, id)
	return nil
}

// Len returns the number of books.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.books)
}

// View calls fn with the named sheet of book id under a read lock. fn must
// not keep references to the sheet or its table after returning.
func (c *Catalog) View(id uuid.UUID, name string, fn func(*sheet.Sheet) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, err := c.sheet(id, name)
	if err != nil {
		return err
	}
	return fn(s)
}

// Update is View under the write lock, for callers that modify the sheet.
func (c *Catalog) Update(id uuid.UUID, name string, fn func(*sheet.Sheet) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.sheet(id, name)
	if err != nil {
		return err
	}
	return fn(s)
}

func (c *Catalog) sheet(id uuid.UUID, name string) (*sheet.Sheet, error) {
	rec, ok := c.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	s := rec.book.Sheet(name)
	if s == nil {
		return nil, ErrSheetNotFound
	}
	return s, nil
}

func (r *record) describe() Entry {
	e := r.entry
	e.Sheets = r.book.Names()
	return e
}
