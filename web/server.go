// Package web serves the catalog to a browser. It is read-only: every
// request re-reads the snapshot file, so a pipeline run that just finished
// shows up on the next refresh.
package web

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"house-tracker/catalog"
	"house-tracker/utils"
)

var pageTemplate = template.Must(template.New("catalog").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Faroese house tracker</title>
  <style>
    body { font-family: sans-serif; margin: 2rem; }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
    th { background: #f0f0f0; }
    img { max-width: 120px; height: auto; }
  </style>
</head>
<body>
  <h1>Faroese house tracker</h1>
  <p>{{len .}} properties</p>
  <table>
    <tr>
      <th>Image</th><th>Category</th><th>City</th><th>Address</th>
      <th>Price</th><th>Latest offer</th><th>Previous</th>
      <th>Built</th><th>m²</th><th>Land m²</th><th>Rooms</th>
      <th>Floors</th><th>Agent</th>
    </tr>
    {{range .}}
    <tr>
      <td>{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Address}}">{{end}}</td>
      <td>{{.Category}}</td>
      <td>{{.City}}</td>
      <td>{{.Address}}</td>
      <td>{{.Price}}</td>
      <td>{{.LatestOffer}}</td>
      <td>{{range .PreviousPrices}}{{.}} {{end}}</td>
      <td>{{.BuiltYear}}</td>
      <td>{{.LivingAreaM2}}</td>
      <td>{{.LandAreaM2}}</td>
      <td>{{.Rooms}}</td>
      <td>{{.Floors}}</td>
      <td>{{.Agent}}</td>
    </tr>
    {{end}}
  </table>
</body>
</html>`))

// Server exposes the catalog as an HTML table and as JSON.
type Server struct {
	logger      *utils.Logger
	catalogPath string
	router      *mux.Router
}

// NewServer creates a Server reading the snapshot at catalogPath.
func NewServer(logger *utils.Logger, catalogPath string) *Server {
	s := &Server{logger: logger, catalogPath: catalogPath, router: mux.NewRouter()}
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/api/properties", s.handleProperties).Methods(http.MethodGet)
	return s
}

// ListenAndServe blocks serving HTTP on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("[web] Serving catalog on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	props, err := catalog.Load(s.catalogPath)
	if err != nil {
		s.logger.Error("[web] Loading catalog: %v", err)
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, props); err != nil {
		s.logger.Error("[web] Rendering catalog page: %v", err)
	}
}

func (s *Server) handleProperties(w http.ResponseWriter, _ *http.Request) {
	props, err := catalog.Load(s.catalogPath)
	if err != nil {
		s.logger.Error("[web] Loading catalog: %v", err)
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(props); err != nil {
		s.logger.Error("[web] Encoding catalog: %v", err)
	}
}
