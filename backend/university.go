package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type universityInfo struct {
	Name        string   `json:"nombre"`
	Address     string   `json:"direccion"`
	Phone       string   `json:"telefono"`
	WhatsApp    string   `json:"whatsapp"`
	Email       string   `json:"email"`
	Description string   `json:"descripcion"`
	Location    location `json:"ubicacion"`
}

var humboldt = universityInfo{
	Name:        "Universidad Alejandro de Humboldt",
	Address:     "Sede Dos Caminos, Av. Rómulo Gallegos, Caracas 1071, Miranda, Venezuela",
	Phone:       "+58 212 238 1175",
	WhatsApp:    "+58 424 157 8708",
	Email:       "informacion@unihumboldt.edu.ve",
	Description: "Una concepción dinámica y vanguardista de la educación universitaria",
	Location: location{
		Lat: 10.49591353878546,
		Lng: -66.82859160799185,
	},
}

func (s *Server) university(w http.ResponseWriter, r *request, params httprouter.Params) error {
	writeJSON(w, http.StatusOK, humboldt)
	return nil
}
