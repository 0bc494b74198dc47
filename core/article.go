package core

import (
	"context"
	"strings"
	"time"

	"github.com/unihumboldt/blog/util"
)

const (
	DefaultImage  = "/images/placeholder.jpg"
	SummaryLength = 150
	SummarySuffix = "..."
)

type Article struct {
	ID          int
	Title       string
	Body        string
	Summary     string
	Category    string
	AuthorID    int
	AuthorName  string // copied at creation, not kept in sync
	PublishedAt time.Time
	UpdatedAt   *time.Time // nil until the first edit
	Image       string
}

// ArticleFields is the client input for a new article. AuthorID and AuthorName are never taken from the client.
type ArticleFields struct {
	Title    string
	Body     string
	Summary  string
	Category string
	Image    string
}

// ArticlePatch is a partial update. Empty fields keep their current value.
type ArticlePatch struct {
	Title    string
	Body     string
	Summary  string
	Category string
	Image    string
}

// Apply merges the patch into a copy of a and sets UpdatedAt.
func (p ArticlePatch) Apply(a Article, updatedAt time.Time) *Article {
	if s := strings.TrimSpace(p.Title); s != "" {
		a.Title = s
	}
	if strings.TrimSpace(p.Body) != "" {
		a.Body = p.Body
	}
	if s := strings.TrimSpace(p.Summary); s != "" {
		a.Summary = s
	}
	if s := strings.TrimSpace(p.Category); s != "" {
		a.Category = s
	}
	if s := strings.TrimSpace(p.Image); s != "" {
		a.Image = s
	}
	a.UpdatedAt = &updatedAt
	return &a
}

// ArticleDB is implemented by every storage backend.
//
// Lists are ordered by PublishedAt descending, then by ID descending.
// GetArticle, UpdateArticle and DeleteArticle return ErrNotFound if the id does not exist.
// InsertArticle assigns the ID.
type ArticleDB interface {
	CountArticles(ctx context.Context) (int, error)
	DeleteArticle(ctx context.Context, id int) error
	GetArticle(ctx context.Context, id int) (*Article, error)
	GetArticles(ctx context.Context) ([]*Article, error)
	GetArticlesByAuthor(ctx context.Context, authorID int) ([]*Article, error)
	InsertArticle(ctx context.Context, a *Article) (*Article, error)
	UpdateArticle(ctx context.Context, id int, patch ArticlePatch, updatedAt time.Time) (*Article, error)
}

// Summarize returns the first SummaryLength characters of body, followed by SummarySuffix.
func Summarize(body string) string {
	return util.Trunc(body, SummaryLength) + SummarySuffix
}

// Articles returns all articles, newest first. No session is required.
func (b *Blog) Articles(ctx context.Context) ([]*Article, error) {
	return b.ArticleDB.GetArticles(ctx)
}

// Article returns a single article. No session is required.
func (b *Blog) Article(ctx context.Context, id int) (*Article, error) {
	a, err := b.ArticleDB.GetArticle(ctx, id)
	if IsNotFound(err) {
		return nil, errArticleNotFound
	}
	return a, err
}

// ArticlesOf returns the articles written by the session user.
func (b *Blog) ArticlesOf(ctx context.Context, s *Snapshot) ([]*Article, error) {
	if err := requireEditor(s); err != nil {
		return nil, err
	}
	return b.ArticleDB.GetArticlesByAuthor(ctx, s.ID)
}

var errArticleNotFound = newError(ErrNotFound, "Artículo no encontrado")

// CreateArticle shadows ArticleDB.InsertArticle. The author is taken from the session.
func (b *Blog) CreateArticle(ctx context.Context, s *Snapshot, fields ArticleFields) (*Article, error) {

	if err := requireEditor(s); err != nil {
		return nil, err
	}

	var title = strings.TrimSpace(fields.Title)
	var category = strings.TrimSpace(fields.Category)

	if title == "" || strings.TrimSpace(fields.Body) == "" || category == "" {
		return nil, newError(ErrValidation, "Título, contenido y categoría son obligatorios")
	}

	// the author must still exist, but its name is taken from the snapshot
	if _, err := b.UserDB.GetUser(ctx, s.ID); err != nil {
		if IsNotFound(err) {
			return nil, newError(ErrNotFound, "Usuario no encontrado")
		}
		return nil, err
	}

	var summary = strings.TrimSpace(fields.Summary)
	if summary == "" {
		summary = Summarize(fields.Body)
	}

	var image = strings.TrimSpace(fields.Image)
	if image == "" {
		image = DefaultImage
	}

	a, err := b.ArticleDB.InsertArticle(ctx, &Article{
		Title:       title,
		Body:        fields.Body,
		Summary:     summary,
		Category:    category,
		AuthorID:    s.ID,
		AuthorName:  s.Name,
		PublishedAt: b.now(),
		Image:       image,
	})
	if err != nil {
		return nil, err
	}

	b.Log.Info(ctx, "article created", "id", a.ID, "author", s.ID)
	return a, nil
}

// UpdateArticle shadows ArticleDB.UpdateArticle. It requires CanMutate.
func (b *Blog) UpdateArticle(ctx context.Context, s *Snapshot, id int, patch ArticlePatch) (*Article, error) {

	if err := requireEditor(s); err != nil {
		return nil, err
	}

	existing, err := b.Article(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanMutate(s, existing) {
		return nil, newError(ErrForbidden, "Solo puedes editar tus propios artículos")
	}

	updated, err := b.ArticleDB.UpdateArticle(ctx, id, patch, b.now())
	if IsNotFound(err) {
		return nil, errArticleNotFound // deleted in the meantime
	}
	if err != nil {
		return nil, err
	}

	b.Log.Info(ctx, "article updated", "id", id, "by", s.ID)
	return updated, nil
}

// DeleteArticle shadows ArticleDB.DeleteArticle. It requires CanMutate. Deletion is permanent.
func (b *Blog) DeleteArticle(ctx context.Context, s *Snapshot, id int) error {

	if err := requireEditor(s); err != nil {
		return err
	}

	existing, err := b.Article(ctx, id)
	if err != nil {
		return err
	}

	if !CanMutate(s, existing) {
		return newError(ErrForbidden, "Solo puedes eliminar tus propios artículos")
	}

	if err := b.ArticleDB.DeleteArticle(ctx, id); err != nil {
		if IsNotFound(err) {
			return errArticleNotFound
		}
		return err
	}

	b.Log.Info(ctx, "article deleted", "id", id, "title", existing.Title, "by", s.ID)
	return nil
}
