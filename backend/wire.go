package backend

import (
	"time"

	"github.com/unihumboldt/blog/core"
	"github.com/unihumboldt/blog/util"
)

type userJSON struct {
	ID    int       `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"nombre"`
	Role  core.Role `json:"rol"`
}

func toUserJSON(s *core.Snapshot) *userJSON {
	if s == nil {
		return nil
	}
	return &userJSON{
		ID:    s.ID,
		Email: s.Email,
		Name:  s.Name,
		Role:  s.Role,
	}
}

// articleJSON contains the dates twice: formatted for display and as RFC 3339.
type articleJSON struct {
	ID               int        `json:"id"`
	Title            string     `json:"titulo"`
	Body             string     `json:"contenido"`
	Summary          string     `json:"resumen"`
	Category         string     `json:"categoria"`
	AuthorID         int        `json:"autor_id"`
	AuthorName       string     `json:"autor_nombre"`
	Author           string     `json:"autor"`
	PublishedDisplay string     `json:"fecha_publicacion"`
	UpdatedDisplay   *string    `json:"fecha_actualizacion"`
	Image            string     `json:"imagen"`
	Published        time.Time  `json:"publicado"`
	Updated          *time.Time `json:"actualizado"`
}

func toArticleJSON(a *core.Article, lang util.Lang) articleJSON {
	var result = articleJSON{
		ID:               a.ID,
		Title:            a.Title,
		Body:             a.Body,
		Summary:          a.Summary,
		Category:         a.Category,
		AuthorID:         a.AuthorID,
		AuthorName:       a.AuthorName,
		Author:           a.AuthorName,
		PublishedDisplay: util.FormatDate(a.PublishedAt, lang),
		Image:            a.Image,
		Published:        a.PublishedAt,
		Updated:          a.UpdatedAt,
	}
	if a.UpdatedAt != nil {
		var display = util.FormatDate(*a.UpdatedAt, lang)
		result.UpdatedDisplay = &display
	}
	return result
}

func toArticlesJSON(articles []*core.Article, lang util.Lang) []articleJSON {
	var result = make([]articleJSON, 0, len(articles))
	for _, a := range articles {
		result = append(result, toArticleJSON(a, lang))
	}
	return result
}

// fullArticleJSON is the detail view. Comments are not implemented, the list is always empty.
type fullArticleJSON struct {
	articleJSON
	Comments []any `json:"comentarios"`
	HTML     string `json:"contenido_html"`
}

func toFullArticleJSON(a *core.Article, lang util.Lang) fullArticleJSON {
	return fullArticleJSON{
		articleJSON: toArticleJSON(a, lang),
		Comments:    []any{},
		HTML:        util.Markdown(a.Body),
	}
}
