package jsondb

import (
	"context"
	"sort"
	"time"

	"github.com/unihumboldt/blog/core"
)

// article is the record format of articulos.json
type article struct {
	ID          int        `json:"id"`
	Title       string     `json:"titulo"`
	Body        string     `json:"contenido"`
	Summary     string     `json:"resumen"`
	Category    string     `json:"categoria"`
	AuthorID    int        `json:"autor_id"`
	AuthorName  string     `json:"autor_nombre"`
	PublishedAt time.Time  `json:"fecha_publicacion"`
	UpdatedAt   *time.Time `json:"fecha_actualizacion,omitempty"`
	Image       string     `json:"imagen,omitempty"`
}

func fromCore(a *core.Article) *article {
	return &article{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		Summary:     a.Summary,
		Category:    a.Category,
		AuthorID:    a.AuthorID,
		AuthorName:  a.AuthorName,
		PublishedAt: a.PublishedAt,
		UpdatedAt:   a.UpdatedAt,
		Image:       a.Image,
	}
}

func (a *article) toCore() *core.Article {
	var image = a.Image
	if image == "" {
		image = core.DefaultImage
	}
	return &core.Article{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		Summary:     a.Summary,
		Category:    a.Category,
		AuthorID:    a.AuthorID,
		AuthorName:  a.AuthorName,
		PublishedAt: a.PublishedAt,
		UpdatedAt:   a.UpdatedAt,
		Image:       image,
	}
}

// ArticleDB implements core.ArticleDB.
type ArticleDB struct {
	files
}

func NewArticleDB(dir string) (*ArticleDB, error) {
	f, err := openFiles(dir)
	if err != nil {
		return nil, err
	}
	return &ArticleDB{f}, nil
}

func (db *ArticleDB) load() ([]*article, error) {
	var all = []*article{}
	return all, db.read(articlesFile, &all)
}

// newestFirst converts and sorts the records which match keep.
func newestFirst(all []*article, keep func(*article) bool) []*core.Article {
	var result = []*core.Article{}
	for _, a := range all {
		if keep(a) {
			result = append(result, a.toCore())
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].PublishedAt.Equal(result[j].PublishedAt) {
			return result[i].PublishedAt.After(result[j].PublishedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

func (db *ArticleDB) CountArticles(ctx context.Context) (int, error) {
	all, err := db.load()
	return len(all), err
}

func (db *ArticleDB) GetArticles(ctx context.Context) ([]*core.Article, error) {
	all, err := db.load()
	if err != nil {
		return nil, err
	}
	return newestFirst(all, func(*article) bool { return true }), nil
}

func (db *ArticleDB) GetArticlesByAuthor(ctx context.Context, authorID int) ([]*core.Article, error) {
	all, err := db.load()
	if err != nil {
		return nil, err
	}
	return newestFirst(all, func(a *article) bool { return a.AuthorID == authorID }), nil
}

func (db *ArticleDB) GetArticle(ctx context.Context, id int) (*core.Article, error) {
	all, err := db.load()
	if err != nil {
		return nil, err
	}
	for _, a := range all {
		if a.ID == id {
			return a.toCore(), nil
		}
	}
	return nil, core.ErrNotFound
}

func (db *ArticleDB) InsertArticle(ctx context.Context, a *core.Article) (*core.Article, error) {

	all, err := db.load()
	if err != nil {
		return nil, err
	}

	var maxID = 0
	for _, existing := range all {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}

	id, err := db.next(func(s *sequences) *int { return &s.Articles }, maxID)
	if err != nil {
		return nil, err
	}

	var record = fromCore(a)
	record.ID = id

	if err := db.write(articlesFile, append(all, record)); err != nil {
		return nil, err
	}
	return record.toCore(), nil
}

func (db *ArticleDB) UpdateArticle(ctx context.Context, id int, patch core.ArticlePatch, updatedAt time.Time) (*core.Article, error) {

	all, err := db.load()
	if err != nil {
		return nil, err
	}

	for i, a := range all {
		if a.ID == id {
			var updated = patch.Apply(*a.toCore(), updatedAt)
			all[i] = fromCore(updated)
			if err := db.write(articlesFile, all); err != nil {
				return nil, err
			}
			return updated, nil
		}
	}
	return nil, core.ErrNotFound
}

func (db *ArticleDB) DeleteArticle(ctx context.Context, id int) error {

	all, err := db.load()
	if err != nil {
		return err
	}

	for i, a := range all {
		if a.ID == id {
			all = append(all[:i], all[i+1:]...)
			return db.write(articlesFile, all)
		}
	}
	return core.ErrNotFound
}
