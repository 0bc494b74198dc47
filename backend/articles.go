package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/unihumboldt/blog/core"
)

// articleInput is the request body of create and update
type articleInput struct {
	Title    string `json:"titulo"`
	Body     string `json:"contenido"`
	Summary  string `json:"resumen"`
	Category string `json:"categoria"`
	Image    string `json:"imagen"`
}

type articleResponse struct {
	Message string      `json:"mensaje"`
	Article articleJSON `json:"articulo"`
}

func (s *Server) articles(w http.ResponseWriter, r *request, params httprouter.Params) error {
	all, err := s.Blog.Articles(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toArticlesJSON(all, r.Lang))
	return nil
}

func (s *Server) article(w http.ResponseWriter, r *request, params httprouter.Params) error {
	id, err := articleID(params)
	if err != nil {
		return err
	}
	a, err := s.Blog.Article(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toArticleJSON(a, r.Lang))
	return nil
}

func (s *Server) fullArticle(w http.ResponseWriter, r *request, params httprouter.Params) error {
	id, err := articleID(params)
	if err != nil {
		return err
	}
	a, err := s.Blog.Article(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toFullArticleJSON(a, r.Lang))
	return nil
}

func (s *Server) myArticles(w http.ResponseWriter, r *request, params httprouter.Params) error {
	own, err := s.Blog.ArticlesOf(r.Context(), r.User)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toArticlesJSON(own, r.Lang))
	return nil
}

func (s *Server) createArticle(w http.ResponseWriter, r *request, params httprouter.Params) error {

	var input articleInput
	if err := readJSON(r, &input); err != nil {
		return err
	}

	a, err := s.Blog.CreateArticle(r.Context(), r.User, core.ArticleFields{
		Title:    input.Title,
		Body:     input.Body,
		Summary:  input.Summary,
		Category: input.Category,
		Image:    input.Image,
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, articleResponse{
		Message: "Artículo creado exitosamente",
		Article: toArticleJSON(a, r.Lang),
	})
	return nil
}

func (s *Server) updateArticle(w http.ResponseWriter, r *request, params httprouter.Params) error {

	id, err := articleID(params)
	if err != nil {
		return err
	}

	var input articleInput
	if err := readJSON(r, &input); err != nil {
		return err
	}

	a, err := s.Blog.UpdateArticle(r.Context(), r.User, id, core.ArticlePatch{
		Title:    input.Title,
		Body:     input.Body,
		Summary:  input.Summary,
		Category: input.Category,
		Image:    input.Image,
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, articleResponse{
		Message: "Artículo actualizado exitosamente",
		Article: toArticleJSON(a, r.Lang),
	})
	return nil
}

func (s *Server) deleteArticle(w http.ResponseWriter, r *request, params httprouter.Params) error {

	id, err := articleID(params)
	if err != nil {
		return err
	}

	if err := s.Blog.DeleteArticle(r.Context(), r.User, id); err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, message{"Artículo eliminado exitosamente"})
	return nil
}
