package core_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/unihumboldt/blog/core"
	"github.com/unihumboldt/blog/jsondb"
)

var now = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func newBlog(t *testing.T) *core.Blog {
	t.Helper()

	var dir = t.TempDir()
	users, err := jsondb.NewUserDB(dir)
	require.NoError(t, err)
	articles, err := jsondb.NewArticleDB(dir)
	require.NoError(t, err)

	var blog = &core.Blog{
		ArticleDB: articles,
		UserDB:    users,
		Hasher:    core.BcryptHasher{Cost: bcrypt.MinCost},
		Now:       func() time.Time { return now },
	}
	require.NoError(t, blog.Init())
	return blog
}

func snapshot(t *testing.T, b *core.Blog, email string, role core.Role) *core.Snapshot {
	t.Helper()
	u, err := b.InsertUser(context.Background(), email, "Nombre "+role.String(), "secreto123", role)
	require.NoError(t, err)
	var s = core.SnapshotOf(u)
	return &s
}

func TestInitRequiresStores(t *testing.T) {
	assert.Error(t, (&core.Blog{}).Init())
}

func TestResolveRole(t *testing.T) {
	tests := []struct {
		code string
		role core.Role
	}{
		{"", core.Viewer},
		{"XYZ", core.Viewer},
		{"admin-2025", core.Viewer},
		{"ADMIN-2025", core.Admin},
		{"REDACTOR-2025", core.Redactor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.role, core.ResolveRole(tt.code), tt.code)
	}
}

func TestCanMutate(t *testing.T) {

	var article = &core.Article{ID: 1, AuthorID: 7}

	tests := []struct {
		name     string
		session  *core.Snapshot
		expected bool
	}{
		{"nil session", nil, false},
		{"admin", &core.Snapshot{ID: 1, Role: core.Admin}, true},
		{"owner", &core.Snapshot{ID: 7, Role: core.Redactor}, true},
		{"other redactor", &core.Snapshot{ID: 8, Role: core.Redactor}, false},
		{"viewer author", &core.Snapshot{ID: 7, Role: core.Viewer}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, core.CanMutate(tt.session, article))
		})
	}

	assert.False(t, core.CanMutate(&core.Snapshot{Role: core.Admin}, nil))
}

func TestRegister(t *testing.T) {

	tests := []struct {
		name string
		reg  core.Registration
		kind error
		role core.Role
	}{
		{"missing name", core.Registration{Email: "a@unihumboldt.edu.ve", Password: "123456"}, core.ErrValidation, ""},
		{"short password", core.Registration{Email: "a@unihumboldt.edu.ve", Password: "12345", Name: "A"}, core.ErrValidation, ""},
		{"short password in characters", core.Registration{Email: "a@unihumboldt.edu.ve", Password: "ñññññ", Name: "A"}, core.ErrValidation, ""},
		{"foreign domain", core.Registration{Email: "a@gmail.com", Password: "123456", Name: "A"}, core.ErrValidation, ""},
		{"viewer", core.Registration{Email: "A@UniHumboldt.edu.ve", Password: "123456", Name: " A "}, nil, core.Viewer},
		{"redactor", core.Registration{Email: "a@unihumboldt.edu.ve", Password: "123456", Name: "A", InvitationCode: "REDACTOR-2025"}, nil, core.Redactor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b = newBlog(t)
			var ctx = context.Background()

			u, err := b.Register(ctx, tt.reg)

			if tt.kind != nil {
				assert.ErrorIs(t, err, tt.kind)
				n, err := b.CountUsers(ctx)
				require.NoError(t, err)
				assert.Zero(t, n)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.role, u.Role)
			assert.Equal(t, "a@unihumboldt.edu.ve", u.Email)
			assert.Equal(t, "A", u.Name)
			assert.True(t, u.RegisteredAt.Equal(now))
			assert.NotEqual(t, tt.reg.Password, u.PasswordHash)
			assert.True(t, b.Hasher.Verify(u.PasswordHash, tt.reg.Password))
		})
	}
}

func TestRegisterCustomDomain(t *testing.T) {
	var b = newBlog(t)
	b.Domain = "@example.edu"

	_, err := b.Register(context.Background(), core.Registration{Email: "x@unihumboldt.edu.ve", Password: "123456", Name: "X"})
	assert.Equal(t, "Solo se permiten emails institucionales (@example.edu)", core.Message(err, ""))

	_, err = b.Register(context.Background(), core.Registration{Email: "x@example.edu", Password: "123456", Name: "X"})
	assert.NoError(t, err)
}

func TestRegisterDuplicate(t *testing.T) {
	var b = newBlog(t)
	var ctx = context.Background()
	var reg = core.Registration{Email: "a@unihumboldt.edu.ve", Password: "123456", Name: "A"}

	_, err := b.Register(ctx, reg)
	require.NoError(t, err)

	reg.Email = " A@unihumboldt.edu.ve"
	_, err = b.Register(ctx, reg)
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.Equal(t, "El usuario ya existe", core.Message(err, ""))

	n, err := b.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLogin(t *testing.T) {
	var b = newBlog(t)
	var ctx = context.Background()
	snapshot(t, b, "profe@unihumboldt.edu.ve", core.Redactor)

	u, err := b.Login(ctx, "Profe@unihumboldt.edu.ve", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, core.Snapshot{ID: u.ID, Email: "profe@unihumboldt.edu.ve", Name: "Nombre redactor", Role: core.Redactor}, core.SnapshotOf(u))

	_, err = b.Login(ctx, "profe@unihumboldt.edu.ve", "")
	assert.ErrorIs(t, err, core.ErrValidation)

	_, errWrong := b.Login(ctx, "profe@unihumboldt.edu.ve", "falsch")
	_, errUnknown := b.Login(ctx, "nadie@unihumboldt.edu.ve", "secreto123")
	assert.ErrorIs(t, errWrong, core.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, core.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestInsertUser(t *testing.T) {
	var b = newBlog(t)
	var ctx = context.Background()

	_, err := b.InsertUser(ctx, "x@unihumboldt.edu.ve", "X", "secreto123", core.Role("root"))
	assert.ErrorIs(t, err, core.ErrValidation)

	_, err = b.InsertUser(ctx, "x@unihumboldt.edu.ve", "X", "123", core.Admin)
	assert.ErrorIs(t, err, core.ErrValidation)

	_, err = b.InsertUser(ctx, "x@unihumboldt.edu.ve", "X", "secreto123", core.Admin)
	assert.NoError(t, err)

	_, err = b.InsertUser(ctx, "x@unihumboldt.edu.ve", "X", "secreto123", core.Admin)
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestCreateArticle(t *testing.T) {
	var b = newBlog(t)
	var ctx = context.Background()
	var redactor = snapshot(t, b, "profe@unihumboldt.edu.ve", core.Redactor)
	var viewer = snapshot(t, b, "lector@unihumboldt.edu.ve", core.Viewer)

	var fields = core.ArticleFields{Title: " Título ", Body: strings.Repeat("A", 200), Category: "Ciencia"}

	_, err := b.CreateArticle(ctx, nil, fields)
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	_, err = b.CreateArticle(ctx, viewer, fields)
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = b.CreateArticle(ctx, redactor, core.ArticleFields{Title: "T", Body: " ", Category: "K"})
	assert.ErrorIs(t, err, core.ErrValidation)

	n, err := b.CountArticles(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	a, err := b.CreateArticle(ctx, redactor, fields)
	require.NoError(t, err)

	var expected = &core.Article{
		ID:          1,
		Title:       "Título",
		Body:        fields.Body,
		Summary:     strings.Repeat("A", 150) + "...",
		Category:    "Ciencia",
		AuthorID:    redactor.ID,
		AuthorName:  "Nombre redactor",
		PublishedAt: now,
		Image:       core.DefaultImage,
	}
	assert.Empty(t, cmp.Diff(expected, a))
	assert.Len(t, a.Summary, 153)

	a, err = b.CreateArticle(ctx, redactor, core.ArticleFields{Title: "T", Body: "B", Summary: "Propio", Category: "K", Image: "/images/x.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "Propio", a.Summary)
	assert.Equal(t, "/images/x.jpg", a.Image)
}

func TestCreateArticleAuthorGone(t *testing.T) {
	var b = newBlog(t)
	_, err := b.CreateArticle(context.Background(), &core.Snapshot{ID: 42, Name: "Fantasma", Role: core.Admin}, core.ArticleFields{Title: "T", Body: "B", Category: "K"})
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, "Usuario no encontrado", core.Message(err, ""))
}

func TestUpdateAndDeleteArticle(t *testing.T) {
	var b = newBlog(t)
	var ctx = context.Background()
	var owner = snapshot(t, b, "profe@unihumboldt.edu.ve", core.Redactor)
	var other = snapshot(t, b, "otra@unihumboldt.edu.ve", core.Redactor)
	var admin = snapshot(t, b, "admin@unihumboldt.edu.ve", core.Admin)

	a, err := b.CreateArticle(ctx, owner, core.ArticleFields{Title: "T", Body: "B", Category: "K"})
	require.NoError(t, err)

	_, err = b.UpdateArticle(ctx, other, a.ID, core.ArticlePatch{Title: "X"})
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.ErrorIs(t, b.DeleteArticle(ctx, other, a.ID), core.ErrForbidden)

	_, err = b.UpdateArticle(ctx, owner, 999, core.ArticlePatch{Title: "X"})
	assert.ErrorIs(t, err, core.ErrNotFound)

	var later = now.Add(time.Hour)
	b.Now = func() time.Time { return later }

	updated, err := b.UpdateArticle(ctx, owner, a.ID, core.ArticlePatch{Title: "Nuevo", Summary: "  "})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", updated.Title)
	assert.Equal(t, a.Summary, updated.Summary)
	assert.True(t, updated.PublishedAt.Equal(now))
	require.NotNil(t, updated.UpdatedAt)
	assert.True(t, updated.UpdatedAt.Equal(later))

	_, err = b.UpdateArticle(ctx, admin, a.ID, core.ArticlePatch{Category: "Otra"})
	require.NoError(t, err)

	own, err := b.ArticlesOf(ctx, owner)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "Otra", own[0].Category)

	assert.ErrorIs(t, b.DeleteArticle(ctx, owner, 999), core.ErrNotFound)
	require.NoError(t, b.DeleteArticle(ctx, owner, a.ID))

	_, err = b.Article(ctx, a.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestArticlePatchApply(t *testing.T) {
	var original = core.Article{ID: 3, Title: "T", Body: "B", Summary: "S", Category: "K", Image: "I"}

	patched := core.ArticlePatch{Body: "  nuevo\n", Image: " "}.Apply(original, now)

	assert.Equal(t, "  nuevo\n", patched.Body)
	assert.Equal(t, "I", patched.Image)
	assert.Equal(t, "T", patched.Title)
	assert.Nil(t, original.UpdatedAt, "the original must not be modified")
	require.NotNil(t, patched.UpdatedAt)
}

func TestSeed(t *testing.T) {
	var b = newBlog(t)
	var ctx = context.Background()

	seeded, err := b.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	all, err := b.Articles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, a := range all {
		assert.Equal(t, "Dr. Carlos Investigador", a.AuthorName)
	}

	u, err := b.Login(ctx, "admin@unihumboldt.edu.ve", "admin123")
	require.NoError(t, err)
	assert.Equal(t, core.Admin, u.Role)

	seeded, err = b.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	n, err := b.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "fallback", core.Message(assert.AnError, "fallback"))
	assert.Equal(t, "m", core.Message(&core.Error{Kind: core.ErrConflict, Message: "m"}, "fallback"))
	assert.True(t, core.IsConflict(&core.Error{Kind: core.ErrConflict}))
}

func TestArticlesNewestFirst(t *testing.T) {
	var b = newBlog(t)
	var ctx = context.Background()
	var redactor = snapshot(t, b, "profe@unihumboldt.edu.ve", core.Redactor)

	// same publication time, the higher id wins
	for _, title := range []string{"uno", "dos", "tres"} {
		_, err := b.CreateArticle(ctx, redactor, core.ArticleFields{Title: title, Body: "B", Category: "K"})
		require.NoError(t, err)
	}

	all, err := b.Articles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 3, all[0].ID)
	assert.Equal(t, "tres", all[0].Title)
	assert.Equal(t, 1, all[2].ID)
}
