// Package storetest checks that a storage backend fulfills core.UserDB and core.ArticleDB.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unihumboldt/blog/core"
)

// Factory returns empty stores. They must be closed by t.Cleanup if necessary.
type Factory func(t *testing.T) (core.UserDB, core.ArticleDB)

var t0 = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

func Run(t *testing.T, newStores Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStores) })
	t.Run("Articles", func(t *testing.T) { testArticles(t, newStores) })
	t.Run("Order", func(t *testing.T) { testOrder(t, newStores) })
	t.Run("Update", func(t *testing.T) { testUpdate(t, newStores) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, newStores) })
}

func insertUser(t *testing.T, users core.UserDB, email string, role core.Role) *core.User {
	t.Helper()
	u, err := users.InsertUser(context.Background(), &core.User{
		Email:        email,
		PasswordHash: "hash",
		Name:         "Name of " + email,
		Role:         role,
		RegisteredAt: t0,
	})
	require.NoError(t, err)
	return u
}

func insertArticle(t *testing.T, articles core.ArticleDB, author *core.User, title string, published time.Time) *core.Article {
	t.Helper()
	a, err := articles.InsertArticle(context.Background(), &core.Article{
		Title:       title,
		Body:        "Body of " + title,
		Summary:     "Summary",
		Category:    "Ciencia",
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		PublishedAt: published,
		Image:       core.DefaultImage,
	})
	require.NoError(t, err)
	return a
}

func testUsers(t *testing.T, newStores Factory) {

	var ctx = context.Background()
	users, _ := newStores(t)

	n, err := users.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = users.GetUserByEmail(ctx, "nobody@unihumboldt.edu.ve")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = users.GetUser(ctx, 1)
	assert.ErrorIs(t, err, core.ErrNotFound)

	ana := insertUser(t, users, " Ana@UniHumboldt.edu.ve ", core.Redactor)
	assert.Equal(t, "ana@unihumboldt.edu.ve", ana.Email)
	assert.NotZero(t, ana.ID)

	got, err := users.GetUserByEmail(ctx, "ANA@unihumboldt.edu.ve")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, got.ID)
	assert.Equal(t, core.Redactor, got.Role)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.True(t, got.RegisteredAt.Equal(t0))

	got, err = users.GetUser(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, ana.Email, got.Email)

	// duplicate email
	_, err = users.InsertUser(ctx, &core.User{Email: "ana@unihumboldt.edu.ve", PasswordHash: "x", Name: "Other", Role: core.Viewer, RegisteredAt: t0})
	assert.ErrorIs(t, err, core.ErrConflict)

	n, err = users.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// ids are unique and increasing
	ben := insertUser(t, users, "ben@unihumboldt.edu.ve", core.Viewer)
	assert.Greater(t, ben.ID, ana.ID)
}

func testArticles(t *testing.T, newStores Factory) {

	var ctx = context.Background()
	users, articles := newStores(t)

	author := insertUser(t, users, "autor@unihumboldt.edu.ve", core.Redactor)

	_, err := articles.GetArticle(ctx, 1)
	assert.ErrorIs(t, err, core.ErrNotFound)

	all, err := articles.GetArticles(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	a := insertArticle(t, articles, author, "Primero", t0)
	assert.NotZero(t, a.ID)
	assert.Nil(t, a.UpdatedAt)

	got, err := articles.GetArticle(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Primero", got.Title)
	assert.Equal(t, "Body of Primero", got.Body)
	assert.Equal(t, author.ID, got.AuthorID)
	assert.Equal(t, author.Name, got.AuthorName)
	assert.Equal(t, core.DefaultImage, got.Image)
	assert.True(t, got.PublishedAt.Equal(t0))
	assert.Nil(t, got.UpdatedAt)

	n, err := articles.CountArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func testOrder(t *testing.T, newStores Factory) {

	var ctx = context.Background()
	users, articles := newStores(t)

	author := insertUser(t, users, "autor@unihumboldt.edu.ve", core.Redactor)
	other := insertUser(t, users, "otro@unihumboldt.edu.ve", core.Admin)

	first := insertArticle(t, articles, author, "uno", t0)
	second := insertArticle(t, articles, other, "dos", t0.Add(time.Hour))
	third := insertArticle(t, articles, author, "tres", t0.Add(2*time.Hour))
	tie := insertArticle(t, articles, other, "empate", t0.Add(2*time.Hour))

	all, err := articles.GetArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{tie.ID, third.ID, second.ID, first.ID}, ids(all))

	own, err := articles.GetArticlesByAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{third.ID, first.ID}, ids(own))
}

func testUpdate(t *testing.T, newStores Factory) {

	var ctx = context.Background()
	users, articles := newStores(t)

	author := insertUser(t, users, "autor@unihumboldt.edu.ve", core.Redactor)
	a := insertArticle(t, articles, author, "Original", t0)

	var edited = t0.Add(24 * time.Hour)
	updated, err := articles.UpdateArticle(ctx, a.ID, core.ArticlePatch{Title: "Nuevo"}, edited)
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", updated.Title)
	assert.Equal(t, "Body of Original", updated.Body)
	require.NotNil(t, updated.UpdatedAt)
	assert.True(t, updated.UpdatedAt.Equal(edited))

	got, err := articles.GetArticle(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", got.Title)
	assert.Equal(t, "Ciencia", got.Category)
	assert.True(t, got.PublishedAt.Equal(t0))
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, got.UpdatedAt.Equal(edited))

	_, err = articles.UpdateArticle(ctx, a.ID+100, core.ArticlePatch{Title: "x"}, edited)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func testDelete(t *testing.T, newStores Factory) {

	var ctx = context.Background()
	users, articles := newStores(t)

	author := insertUser(t, users, "autor@unihumboldt.edu.ve", core.Redactor)
	a := insertArticle(t, articles, author, "uno", t0)
	b := insertArticle(t, articles, author, "dos", t0.Add(time.Minute))

	assert.ErrorIs(t, articles.DeleteArticle(ctx, 999), core.ErrNotFound)

	n, err := articles.CountArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, articles.DeleteArticle(ctx, a.ID))

	_, err = articles.GetArticle(ctx, a.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.ErrorIs(t, articles.DeleteArticle(ctx, a.ID), core.ErrNotFound)

	// ids are not reused
	c := insertArticle(t, articles, author, "tres", t0.Add(2*time.Minute))
	assert.Greater(t, c.ID, b.ID)
}

func ids(articles []*core.Article) []int {
	var result = []int{}
	for _, a := range articles {
		result = append(result, a.ID)
	}
	return result
}
