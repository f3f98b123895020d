package database

import (
	"github.com/mrlokans/catalog/internal/entities"
)

// InsertTitle stores a new title and its comments, assigning keys. On failure
// nothing is written and the keys are left as they were.
func (d *Database) InsertTitle(t *entities.Title) error {
	restore := snapshotKeys(&t.LibraryItem)
	err := d.write("InsertTitle", func(g *gateways) error {
		return g.titles.Insert(t)
	})
	if err != nil {
		restore()
	}
	return err
}

// UpdateTitle rewrites a stored title and reconciles its comments in one
// transaction.
func (d *Database) UpdateTitle(t *entities.Title) error {
	if err := requireKey("UpdateTitle", "title", t.Key); err != nil {
		return err
	}
	restore := snapshotKeys(&t.LibraryItem)
	err := d.write("UpdateTitle", func(g *gateways) error {
		return g.titles.Update(t)
	})
	if err != nil {
		restore()
	}
	return err
}

// DeleteTitle removes a title and every stored comment it owns.
func (d *Database) DeleteTitle(t *entities.Title) error {
	if err := requireKey("DeleteTitle", "title", t.Key); err != nil {
		return err
	}
	return d.write("DeleteTitle", func(g *gateways) error {
		return g.titles.Delete(t)
	})
}

// DeleteTitleByKey removes a title by key together with its comments.
func (d *Database) DeleteTitleByKey(key entities.OptionalKey) error {
	if err := requireKey("DeleteTitleByKey", "title", key); err != nil {
		return err
	}
	return d.write("DeleteTitleByKey", func(g *gateways) error {
		return g.titles.DeleteByKey(key)
	})
}

func (d *Database) GetTitle(key entities.OptionalKey) (*entities.Title, error) {
	var t *entities.Title
	err := d.read("GetTitle", func(g *gateways) error {
		var err error
		t, err = g.titles.GetByKey(key)
		return err
	})
	return t, err
}

func (d *Database) GetAllTitles() ([]*entities.Title, error) {
	var ts []*entities.Title
	err := d.read("GetAllTitles", func(g *gateways) error {
		var err error
		ts, err = g.titles.GetAll()
		return err
	})
	return ts, err
}

// GetTitlesForList returns the titles of the TITLE list with the given
// display name.
func (d *Database) GetTitlesForList(listName string) ([]*entities.Title, error) {
	var ts []*entities.Title
	err := d.read("GetTitlesForList", func(g *gateways) error {
		var err error
		ts, err = g.titles.GetForList(listName)
		return err
	})
	return ts, err
}

// GetTitlesForAuthor returns the titles attributed to authors with the given
// name.
func (d *Database) GetTitlesForAuthor(authorName string) ([]*entities.Title, error) {
	var ts []*entities.Title
	err := d.read("GetTitlesForAuthor", func(g *gateways) error {
		var err error
		ts, err = g.titles.GetForAuthor(authorName)
		return err
	})
	return ts, err
}

// InsertAuthor stores a new author and its comments, assigning keys.
func (d *Database) InsertAuthor(a *entities.Author) error {
	restore := snapshotKeys(&a.LibraryItem)
	err := d.write("InsertAuthor", func(g *gateways) error {
		return g.authors.Insert(a)
	})
	if err != nil {
		restore()
	}
	return err
}

// UpdateAuthor rewrites a stored author and reconciles its comments.
func (d *Database) UpdateAuthor(a *entities.Author) error {
	if err := requireKey("UpdateAuthor", "author", a.Key); err != nil {
		return err
	}
	restore := snapshotKeys(&a.LibraryItem)
	err := d.write("UpdateAuthor", func(g *gateways) error {
		return g.authors.Update(a)
	})
	if err != nil {
		restore()
	}
	return err
}

// DeleteAuthor removes an author and its comments. Titles naming the author
// keep their row with the author cleared.
func (d *Database) DeleteAuthor(a *entities.Author) error {
	if err := requireKey("DeleteAuthor", "author", a.Key); err != nil {
		return err
	}
	return d.write("DeleteAuthor", func(g *gateways) error {
		return g.authors.Delete(a)
	})
}

func (d *Database) DeleteAuthorByKey(key entities.OptionalKey) error {
	if err := requireKey("DeleteAuthorByKey", "author", key); err != nil {
		return err
	}
	return d.write("DeleteAuthorByKey", func(g *gateways) error {
		return g.authors.DeleteByKey(key)
	})
}

func (d *Database) GetAuthor(key entities.OptionalKey) (*entities.Author, error) {
	var a *entities.Author
	err := d.read("GetAuthor", func(g *gateways) error {
		var err error
		a, err = g.authors.GetByKey(key)
		return err
	})
	return a, err
}

func (d *Database) GetAllAuthors() ([]*entities.Author, error) {
	var as []*entities.Author
	err := d.read("GetAllAuthors", func(g *gateways) error {
		var err error
		as, err = g.authors.GetAll()
		return err
	})
	return as, err
}

func (d *Database) GetAuthorsForList(listName string) ([]*entities.Author, error) {
	var as []*entities.Author
	err := d.read("GetAuthorsForList", func(g *gateways) error {
		var err error
		as, err = g.authors.GetForList(listName)
		return err
	})
	return as, err
}

func (d *Database) InsertList(l *entities.KCLSList) error {
	key := l.Key
	err := d.write("InsertList", func(g *gateways) error {
		return g.lists.Insert(l)
	})
	if err != nil {
		l.Key = key
	}
	return err
}

func (d *Database) UpdateList(l *entities.KCLSList) error {
	if err := requireKey("UpdateList", "list", l.Key); err != nil {
		return err
	}
	return d.write("UpdateList", func(g *gateways) error {
		return g.lists.Update(l)
	})
}

// DeleteList removes a list. It fails while titles or authors are filed
// under it.
func (d *Database) DeleteList(l *entities.KCLSList) error {
	return d.DeleteListByKey(l.Key)
}

func (d *Database) DeleteListByKey(key entities.OptionalKey) error {
	if err := requireKey("DeleteList", "list", key); err != nil {
		return err
	}
	return d.write("DeleteList", func(g *gateways) error {
		return g.lists.DeleteByKey(key)
	})
}

func (d *Database) GetList(key entities.OptionalKey) (*entities.KCLSList, error) {
	var l *entities.KCLSList
	err := d.read("GetList", func(g *gateways) error {
		var err error
		l, err = g.lists.GetByKey(key)
		return err
	})
	return l, err
}

func (d *Database) GetAllLists() ([]*entities.KCLSList, error) {
	var ls []*entities.KCLSList
	err := d.read("GetAllLists", func(g *gateways) error {
		var err error
		ls, err = g.lists.GetAll()
		return err
	})
	return ls, err
}

func (d *Database) GetListByName(listType entities.ListType, name string) (*entities.KCLSList, error) {
	var l *entities.KCLSList
	err := d.read("GetListByName", func(g *gateways) error {
		var err error
		l, err = g.lists.GetByName(listType, name)
		return err
	})
	return l, err
}

func (d *Database) GetListsOfType(listType entities.ListType) ([]*entities.KCLSList, error) {
	var ls []*entities.KCLSList
	err := d.read("GetListsOfType", func(g *gateways) error {
		var err error
		ls, err = g.lists.GetByType(listType)
		return err
	})
	return ls, err
}

// InsertComment stores a single comment for an existing title or author.
func (d *Database) InsertComment(c *entities.Comment) error {
	key := c.Key
	err := d.write("InsertComment", func(g *gateways) error {
		return g.comments.Insert(c)
	})
	if err != nil {
		c.Key = key
	}
	return err
}

func (d *Database) UpdateComment(c *entities.Comment) error {
	if err := requireKey("UpdateComment", "comment", c.Key); err != nil {
		return err
	}
	return d.write("UpdateComment", func(g *gateways) error {
		return g.comments.Update(c)
	})
}

func (d *Database) DeleteComment(c *entities.Comment) error {
	if err := requireKey("DeleteComment", "comment", c.Key); err != nil {
		return err
	}
	return d.write("DeleteComment", func(g *gateways) error {
		return g.comments.Delete(c)
	})
}

func (d *Database) GetComment(key entities.OptionalKey) (*entities.Comment, error) {
	var c *entities.Comment
	err := d.read("GetComment", func(g *gateways) error {
		var err error
		c, err = g.comments.GetByKey(key)
		return err
	})
	return c, err
}

// GetCommentsFor returns the stored comments of one title or author.
func (d *Database) GetCommentsFor(ownerKey entities.OptionalKey, ownerType entities.ListType) ([]*entities.Comment, error) {
	var cs []*entities.Comment
	err := d.read("GetCommentsFor", func(g *gateways) error {
		var err error
		cs, err = g.comments.ForOwner(ownerKey, ownerType)
		return err
	})
	return cs, err
}
