// Package backend is the HTTP interface of the blog. It speaks JSON, except for the management panel.
package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/unihumboldt/blog/core"
	"github.com/unihumboldt/blog/logging"
	"github.com/unihumboldt/blog/util"
)

type Server struct {
	Blog     *core.Blog
	Sessions *core.Sessions
	Log      logging.Logger
	Prefix   string // URL prefix, used for links in the panel
}

// request is passed to every handler
type request struct {
	*http.Request
	User *core.Snapshot // nil if not logged in
	Lang util.Lang
}

type handler func(w http.ResponseWriter, r *request, params httprouter.Params) error

// guard rejects a request before the handler runs
type guard func(r *request) error

var (
	errNotLoggedIn      = &core.Error{Kind: core.ErrUnauthorized, Message: "No autorizado. Debes iniciar sesión."}
	errPermissionDenied = &core.Error{Kind: core.ErrForbidden, Message: "Permisos insuficientes."}
)

func requireAuthenticated(r *request) error {
	if r.User == nil {
		return errNotLoggedIn
	}
	return nil
}

// requireRole also rejects anonymous requests, but with 403. Combine it with requireAuthenticated to get 401 for them.
func requireRole(roles ...core.Role) guard {
	return func(r *request) error {
		if r.User == nil || !r.User.Role.In(roles...) {
			return errPermissionDenied
		}
		return nil
	}
}

func (s *Server) middleware(f handler, guards ...guard) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		var r = &request{
			Request: req,
			Lang:    util.MatchLang(req.Header.Get("Accept-Language")),
		}
		r.User, _ = s.Sessions.Current(req.Context())

		for _, g := range guards {
			if err := g(r); err != nil {
				s.writeError(w, r, err)
				return
			}
		}

		if err := f(w, r, params); err != nil {
			s.writeError(w, r, err)
		}
	}
}

// NewRouter returns the routes. It requires the session middleware, see Handler.
func NewRouter(s *Server) *httprouter.Router {

	var router = httprouter.New()

	var editors = requireRole(core.Editors...)

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Recurso no encontrado"})
	})

	// public
	router.GET("/api/articulos", s.middleware(s.articles))
	router.GET("/api/articulos/:id", s.middleware(s.article))
	router.GET("/api/articulo-completo/:id", s.middleware(s.fullArticle))
	router.GET("/api/universidad", s.middleware(s.university))
	router.GET("/api/usuario-actual", s.middleware(s.currentUser))
	router.POST("/api/registro", s.middleware(s.register))
	router.POST("/api/login", s.middleware(s.login))
	router.POST("/api/logout", s.middleware(s.logout))

	// private
	router.GET("/api/perfil", s.middleware(s.profile, requireAuthenticated))
	router.GET("/api/admin", s.middleware(s.admin, requireRole(core.Admin)))
	router.GET("/api/mis-articulos", s.middleware(s.myArticles, requireAuthenticated, editors))
	router.POST("/api/articulos", s.middleware(s.createArticle, requireAuthenticated, editors))
	router.PUT("/api/articulos/:id", s.middleware(s.updateArticle, requireAuthenticated, editors))
	router.DELETE("/api/articulos/:id", s.middleware(s.deleteArticle, requireAuthenticated, editors))
	router.GET("/panel", s.middleware(s.panel, requireAuthenticated, editors))

	return router
}

// Handler returns the router wrapped in the session and logging middleware.
func (s *Server) Handler() http.Handler {
	if s.Log == nil {
		s.Log = logging.Discard()
	}
	return s.logRequests(s.Sessions.LoadAndSave(NewRouter(s)))
}
