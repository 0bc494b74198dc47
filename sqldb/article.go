package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/unihumboldt/blog/core"
)

const articleColumns = "id, titulo, contenido, resumen, categoria, autor_id, autor_nombre, fecha_publicacion, fecha_actualizacion, imagen"

const newestFirst = " ORDER BY fecha_publicacion DESC, id DESC"

func scanArticle(row scanner) (*core.Article, error) {
	var a = &core.Article{}
	var published int64
	var updated sql.NullInt64
	err := row.Scan(&a.ID, &a.Title, &a.Body, &a.Summary, &a.Category, &a.AuthorID, &a.AuthorName, &published, &updated, &a.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.PublishedAt = fromUnix(published)
	if updated.Valid {
		var t = fromUnix(updated.Int64)
		a.UpdatedAt = &t
	}
	if a.Image == "" {
		a.Image = core.DefaultImage
	}
	return a, nil
}

func scanArticles(rows *sql.Rows, err error) ([]*core.Article, error) {

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all = []*core.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, a)
	}
	return all, rows.Err()
}

// ArticleDB implements core.ArticleDB.
type ArticleDB struct {
	*sql.DB
	count       *sql.Stmt
	delete      *sql.Stmt
	get         *sql.Stmt
	getAll      *sql.Stmt
	getByAuthor *sql.Stmt
	insert      *sql.Stmt
	update      *sql.Stmt
}

func NewArticleDB(db *sql.DB) (*ArticleDB, error) {
	var p = &preparer{db: db}
	var articleDB = &ArticleDB{
		DB:          db,
		count:       p.prepare("SELECT COUNT(*) FROM articulos"),
		delete:      p.prepare("DELETE FROM articulos WHERE id = ?"),
		get:         p.prepare("SELECT " + articleColumns + " FROM articulos WHERE id = ?"),
		getAll:      p.prepare("SELECT " + articleColumns + " FROM articulos" + newestFirst),
		getByAuthor: p.prepare("SELECT " + articleColumns + " FROM articulos WHERE autor_id = ?" + newestFirst),
		insert:      p.prepare("INSERT INTO articulos (titulo, contenido, resumen, categoria, autor_id, autor_nombre, fecha_publicacion, imagen) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"),
		update:      p.prepare("UPDATE articulos SET titulo = ?, contenido = ?, resumen = ?, categoria = ?, imagen = ?, fecha_actualizacion = ? WHERE id = ?"),
	}
	return articleDB, p.err
}

func (db *ArticleDB) CountArticles(ctx context.Context) (int, error) {
	var n int
	return n, db.count.QueryRowContext(ctx).Scan(&n)
}

func (db *ArticleDB) GetArticles(ctx context.Context) ([]*core.Article, error) {
	return scanArticles(db.getAll.QueryContext(ctx))
}

func (db *ArticleDB) GetArticlesByAuthor(ctx context.Context, authorID int) ([]*core.Article, error) {
	return scanArticles(db.getByAuthor.QueryContext(ctx, authorID))
}

func (db *ArticleDB) GetArticle(ctx context.Context, id int) (*core.Article, error) {
	return scanArticle(db.get.QueryRowContext(ctx, id))
}

func (db *ArticleDB) InsertArticle(ctx context.Context, a *core.Article) (*core.Article, error) {

	var inserted = *a
	inserted.PublishedAt = fromUnix(toUnix(a.PublishedAt))
	inserted.UpdatedAt = nil
	if inserted.Image == "" {
		inserted.Image = core.DefaultImage
	}

	result, err := db.insert.ExecContext(ctx, inserted.Title, inserted.Body, inserted.Summary, inserted.Category, inserted.AuthorID, inserted.AuthorName, toUnix(inserted.PublishedAt), inserted.Image)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	inserted.ID = int(id)

	return &inserted, nil
}

// UpdateArticle reads, patches and writes the article in one transaction.
func (db *ArticleDB) UpdateArticle(ctx context.Context, id int, patch core.ArticlePatch, updatedAt time.Time) (*core.Article, error) {

	var updated *core.Article

	err := withTx(ctx, db.DB, func(tx *sql.Tx) error {

		existing, err := scanArticle(tx.StmtContext(ctx, db.get).QueryRowContext(ctx, id))
		if err != nil {
			return err
		}

		updated = patch.Apply(*existing, fromUnix(toUnix(updatedAt)))

		_, err = tx.StmtContext(ctx, db.update).ExecContext(ctx, updated.Title, updated.Body, updated.Summary, updated.Category, updated.Image, toUnix(*updated.UpdatedAt), id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (db *ArticleDB) DeleteArticle(ctx context.Context, id int) error {

	result, err := db.delete.ExecContext(ctx, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
