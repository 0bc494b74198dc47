package core

import (
	"context"
)

type seedUser struct {
	email    string
	name     string
	password string
	role     Role
}

var seedUsers = []seedUser{
	{"admin@unihumboldt.edu.ve", "Administrador Principal", "admin123", Admin},
	{"profesor@unihumboldt.edu.ve", "Dr. Carlos Investigador", "profesor123", Redactor},
}

var seedArticles = []ArticleFields{
	{
		Title:    "Avances en Inteligencia Artificial Educativa",
		Body:     "La IA está transformando la educación universitaria...\nNuevos métodos de enseñanza...\nResultados prometedores...",
		Summary:  "Exploramos cómo la IA está revolucionando los métodos de enseñanza.",
		Category: "Tecnología",
	},
	{
		Title:    "Investigación en Energías Renovables",
		Body:     "Nuevos descubrimientos en energía solar...\nEficiencia mejorada...\nFuturas aplicaciones...",
		Summary:  "Avances en la eficiencia de paneles solares universitarios.",
		Category: "Ingeniería",
	},
}

// Seed inserts demo users and articles if both stores are empty. The articles are written by the redactor.
// It returns false if the stores were not empty.
func (b *Blog) Seed(ctx context.Context) (bool, error) {

	users, err := b.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	articles, err := b.CountArticles(ctx)
	if err != nil {
		return false, err
	}
	if users > 0 || articles > 0 {
		b.Log.Info(ctx, "skipping seed", "users", users, "articles", articles)
		return false, nil
	}

	var author *User
	for _, su := range seedUsers {
		u, err := b.InsertUser(ctx, su.email, su.name, su.password, su.role)
		if err != nil {
			return false, err
		}
		if u.Role == Redactor {
			author = u
		}
	}

	var snapshot = SnapshotOf(author)
	for _, fields := range seedArticles {
		if _, err := b.CreateArticle(ctx, &snapshot, fields); err != nil {
			return false, err
		}
	}

	b.Log.Info(ctx, "seed data inserted", "users", len(seedUsers), "articles", len(seedArticles))
	return true, nil
}
