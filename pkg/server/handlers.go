package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kerbaras/fitguide/pkg/assets"
	"github.com/kerbaras/fitguide/pkg/catalog"
	"github.com/kerbaras/fitguide/pkg/muscles"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// gender reads ?gender=, defaulting to male.
func gender(r *http.Request) (catalog.Gender, error) {
	v := r.URL.Query().Get("gender")
	if v == "" {
		return catalog.Male, nil
	}
	return catalog.ParseGender(v)
}

func view(r *http.Request) (catalog.View, error) {
	v := r.URL.Query().Get("view")
	if v == "" {
		return catalog.Front, nil
	}
	return catalog.ParseView(v)
}

func (s *Server) handleEquipment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.FilterOptions())
}

type muscleResponse struct {
	Name      string              `json:"name"`
	Count     int                 `json:"count"`
	Equipment []catalog.Equipment `json:"equipment"`
}

func (s *Server) handleMuscles(w http.ResponseWriter, r *http.Request) {
	g, err := gender(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	idx := s.catalog.Index()
	out := []muscleResponse{}
	for _, m := range idx.Muscles(g) {
		out = append(out, muscleResponse{
			Name:      m,
			Count:     idx.Count(m, catalog.AllEquipment, g),
			Equipment: idx.Equipment(m, g),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMuscleExercises(w http.ResponseWriter, r *http.Request) {
	g, err := gender(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	filter, err := catalog.ParseEquipment(r.URL.Query().Get("equipment"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	muscle := mux.Vars(r)["muscle"]
	if !s.catalog.Index().HasMuscle(muscle, g) {
		writeError(w, http.StatusNotFound, "unknown muscle "+strconv.Quote(muscle))
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.Filter(muscle, filter, g))
}

type exerciseResponse struct {
	Name string `json:"name"`
	assets.Display
	Available bool `json:"available"`
}

// handleExercise always answers with a record; unknown names get the
// placeholder with available=false.
func (s *Server) handleExercise(w http.ResponseWriter, r *http.Request) {
	g, err := gender(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := mux.Vars(r)["name"]
	d := s.resolver.Resolve(name, g)
	writeJSON(w, http.StatusOK, exerciseResponse{Name: name, Display: d, Available: d.Available()})
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	g, err := gender(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	v, err := view(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.Regions(g, v))
}

type hitResponse struct {
	Hit      bool    `json:"hit"`
	Region   string  `json:"region,omitempty"`
	Distance float64 `json:"distance,omitempty"`
}

// handleHit hit-tests ?x= (left) and ?y= (top), both in percent.
func (s *Server) handleHit(w http.ResponseWriter, r *http.Request) {
	g, err := gender(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	v, err := view(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	p := muscles.Point{Left: x, Top: y}
	if errX != nil || errY != nil || !p.Finite() {
		writeError(w, http.StatusBadRequest, "x and y must be finite numbers")
		return
	}

	m, ok := muscles.Nearest(p, s.catalog.Regions(g, v))
	if !ok {
		writeJSON(w, http.StatusOK, hitResponse{})
		return
	}
	writeJSON(w, http.StatusOK, hitResponse{Hit: true, Region: m.Region, Distance: m.Distance})
}
