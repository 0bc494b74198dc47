package core

// Editors are the roles which may write articles.
var Editors = []Role{Admin, Redactor}

// CanMutate returns true if the session user may edit or delete the article.
// Admins may change any article, redactors only their own.
func CanMutate(s *Snapshot, a *Article) bool {
	if s == nil || a == nil {
		return false
	}
	switch s.Role {
	case Admin:
		return true
	case Redactor:
		return a.AuthorID == s.ID
	default:
		return false // the route guards should not let other roles get here
	}
}

// requireEditor repeats the route guard, so Blog is safe to use without the HTTP layer.
func requireEditor(s *Snapshot) error {
	if s == nil {
		return newError(ErrUnauthorized, "No autorizado. Debes iniciar sesión.")
	}
	if !s.Role.In(Editors...) {
		return newError(ErrForbidden, "Permisos insuficientes.")
	}
	return nil
}
