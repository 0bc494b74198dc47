package backend

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/unihumboldt/blog/core"
)

const maxBodySize = 1 << 20

var errBadRequest = &core.Error{Kind: core.ErrValidation, Message: "Solicitud inválida"}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// readJSON decodes the request body into v. An empty body leaves v unchanged.
func readJSON(r *request, v any) error {
	var dec = json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errBadRequest
	}
	return nil
}

// articleID parses the :id parameter. Ids which can't exist are not found.
func articleID(params httprouter.Params) (int, error) {
	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil || id <= 0 {
		return 0, &core.Error{Kind: core.ErrNotFound, Message: "Artículo no encontrado"}
	}
	return id, nil
}

type message struct {
	Message string `json:"mensaje"`
}
