package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/unihumboldt/blog/core"
)

type userResponse struct {
	Message string    `json:"mensaje,omitempty"`
	User    *userJSON `json:"usuario"`
}

func (s *Server) register(w http.ResponseWriter, r *request, params httprouter.Params) error {

	var input struct {
		Email          string `json:"email"`
		Password       string `json:"password"`
		Name           string `json:"nombre"`
		InvitationCode string `json:"codigoInvitacion"`
	}
	if err := readJSON(r, &input); err != nil {
		return err
	}

	user, err := s.Blog.Register(r.Context(), core.Registration{
		Email:          input.Email,
		Password:       input.Password,
		Name:           input.Name,
		InvitationCode: input.InvitationCode,
	})
	if err != nil {
		return err
	}

	if err := s.Sessions.Start(r.Context(), user); err != nil {
		return err
	}

	var snapshot = core.SnapshotOf(user)
	writeJSON(w, http.StatusCreated, userResponse{
		Message: "Usuario registrado exitosamente como " + user.Role.String(),
		User:    toUserJSON(&snapshot),
	})
	return nil
}

func (s *Server) login(w http.ResponseWriter, r *request, params httprouter.Params) error {

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &input); err != nil {
		return err
	}

	user, err := s.Blog.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		return err
	}

	if err := s.Sessions.Start(r.Context(), user); err != nil {
		return err
	}

	var snapshot = core.SnapshotOf(user)
	writeJSON(w, http.StatusOK, userResponse{
		Message: "Login exitoso",
		User:    toUserJSON(&snapshot),
	})
	return nil
}

// logout works without a session too
func (s *Server) logout(w http.ResponseWriter, r *request, params httprouter.Params) error {
	if err := s.Sessions.End(r.Context()); err != nil {
		return err
	}
	if r.User != nil {
		s.Log.Info(r.Context(), "user logged out", "id", r.User.ID)
	}
	writeJSON(w, http.StatusOK, message{"Sesión cerrada exitosamente"})
	return nil
}

// currentUser returns the session snapshot, which is not refreshed from the store
func (s *Server) currentUser(w http.ResponseWriter, r *request, params httprouter.Params) error {
	writeJSON(w, http.StatusOK, userResponse{User: toUserJSON(r.User)})
	return nil
}

func (s *Server) profile(w http.ResponseWriter, r *request, params httprouter.Params) error {
	writeJSON(w, http.StatusOK, userResponse{
		Message: "Bienvenido a tu perfil",
		User:    toUserJSON(r.User),
	})
	return nil
}

func (s *Server) admin(w http.ResponseWriter, r *request, params httprouter.Params) error {
	writeJSON(w, http.StatusOK, message{"Panel de administración"})
	return nil
}
