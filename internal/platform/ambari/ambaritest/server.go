// Package ambaritest provides an in-memory Ambari server for tests.
package ambaritest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/imamik/blueprintctl/internal/platform/ambari"
)

// Credentials accepted by the fake server.
const (
	User     = "admin"
	Password = "admin"
)

// Server is a fake Ambari server backed by in-memory state. Exported fields
// may be set before issuing requests; use Lock/Unlock when a test mutates
// them concurrently with requests.
type Server struct {
	*httptest.Server
	sync.Mutex

	Blueprints map[string]ambari.Blueprint
	Hosts      map[string]string
	Cluster    string
	Services   map[string]string
	Components map[string]map[string]string
	Tasks      map[int]map[string]string
	Export     []byte

	// CreateError / DeleteError make the corresponding call fail with a 500
	// carrying the given message.
	CreateError string
	DeleteError string

	// Calls records "METHOD path" of every request.
	Calls []string
	// Created holds the last accepted create request body.
	Created map[string]any
}

// NewServer starts a fake server with no blueprints, hosts or cluster.
func NewServer() *Server {
	s := &Server{
		Blueprints: map[string]ambari.Blueprint{},
		Hosts:      map[string]string{},
		Services:   map[string]string{},
		Components: map[string]map[string]string{},
		Tasks:      map[int]map[string]string{},
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// CallCount returns how often "METHOD path" was requested.
func (s *Server) CallCount(call string) int {
	s.Lock()
	defer s.Unlock()
	n := 0
	for _, c := range s.Calls {
		if c == call {
			n++
		}
	}
	return n
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.auth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/blueprints", s.listBlueprints)
		r.Get("/blueprints/{id}", s.getBlueprint)
		r.Get("/hosts", s.listHosts)
		r.Get("/clusters", s.listClusters)
		r.Route("/clusters/{name}", func(r chi.Router) {
			r.Get("/", s.exportCluster)
			r.Post("/", s.createCluster)
			r.Delete("/", s.deleteCluster)
			r.Get("/services", s.listServices)
			r.Put("/services", s.setServices)
			r.Get("/requests/{id}", s.getRequest)
		})
	})
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Lock()
		s.Calls = append(s.Calls, r.Method+" "+r.URL.Path)
		s.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != User || pass != Password {
			writeError(w, http.StatusForbidden, "Unable to sign in. Invalid username/password combination.")
			return
		}
		if r.Method != http.MethodGet && r.Header.Get("X-Requested-By") == "" {
			writeError(w, http.StatusBadRequest, "CSRF protection is turned on. X-Requested-By HTTP header is required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listBlueprints(w http.ResponseWriter, _ *http.Request) {
	s.Lock()
	defer s.Unlock()

	items := make([]map[string]any, 0, len(s.Blueprints))
	for name, bp := range s.Blueprints {
		items = append(items, map[string]any{
			"Blueprints": map[string]string{
				"blueprint_name": name,
				"stack_name":     bp.StackName,
				"stack_version":  bp.StackVersion,
			},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) getBlueprint(w http.ResponseWriter, r *http.Request) {
	s.Lock()
	defer s.Unlock()

	id := chi.URLParam(r, "id")
	bp, ok := s.Blueprints[id]
	if !ok {
		writeError(w, http.StatusNotFound, "The requested resource doesn't exist: Blueprint not found, blueprint_name="+id)
		return
	}

	groups := make([]map[string]any, 0, len(bp.HostGroups))
	for _, hg := range bp.HostGroups {
		comps := make([]map[string]string, 0, len(hg.Components))
		for _, c := range hg.Components {
			comps = append(comps, map[string]string{"name": c})
		}
		groups = append(groups, map[string]any{
			"name":        hg.Name,
			"cardinality": hg.Cardinality,
			"components":  comps,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"Blueprints": map[string]string{
			"blueprint_name": id,
			"stack_name":     bp.StackName,
			"stack_version":  bp.StackVersion,
		},
		"host_groups": groups,
	})
}

func (s *Server) listHosts(w http.ResponseWriter, _ *http.Request) {
	s.Lock()
	defer s.Unlock()

	items := make([]map[string]any, 0, len(s.Hosts))
	for name, status := range s.Hosts {
		items = append(items, map[string]any{
			"Hosts": map[string]string{"host_name": name, "host_status": status},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) listClusters(w http.ResponseWriter, _ *http.Request) {
	s.Lock()
	defer s.Unlock()

	items := []map[string]any{}
	if s.Cluster != "" {
		items = append(items, map[string]any{
			"Clusters": map[string]string{"cluster_name": s.Cluster},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) exportCluster(w http.ResponseWriter, r *http.Request) {
	s.Lock()
	defer s.Unlock()

	if !s.clusterMatches(w, r) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.Export)
}

func (s *Server) createCluster(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.Lock()
	defer s.Unlock()

	if s.CreateError != "" {
		writeError(w, http.StatusInternalServerError, s.CreateError)
		return
	}
	name := chi.URLParam(r, "name")
	if s.Cluster != "" {
		writeError(w, http.StatusConflict, "Attempted to create a Cluster which already exists, clusterName="+name)
		return
	}

	var req map[string]any
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid Request: Malformed Request Body")
		return
	}
	bpName, _ := req["blueprint"].(string)
	if _, ok := s.Blueprints[bpName]; !ok {
		writeError(w, http.StatusBadRequest, "Blueprint does not exist: "+bpName)
		return
	}

	s.Created = req
	s.Cluster = name
	writeJSON(w, http.StatusAccepted, map[string]any{
		"Requests": map[string]any{"id": 1, "status": "InProgress"},
	})
}

func (s *Server) deleteCluster(w http.ResponseWriter, r *http.Request) {
	s.Lock()
	defer s.Unlock()

	if s.DeleteError != "" {
		writeError(w, http.StatusInternalServerError, s.DeleteError)
		return
	}
	if !s.clusterMatches(w, r) {
		return
	}
	s.Cluster = ""
	w.WriteHeader(http.StatusOK)
}

func (s *Server) listServices(w http.ResponseWriter, r *http.Request) {
	s.Lock()
	defer s.Unlock()

	if !s.clusterMatches(w, r) {
		return
	}
	items := make([]map[string]any, 0, len(s.Services))
	for name, state := range s.Services {
		comps := []map[string]any{}
		for comp, cstate := range s.Components[name] {
			comps = append(comps, map[string]any{
				"ServiceComponentInfo": map[string]string{"component_name": comp, "state": cstate},
			})
		}
		items = append(items, map[string]any{
			"ServiceInfo": map[string]string{"service_name": name, "state": state},
			"components":  comps,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) setServices(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.Lock()
	defer s.Unlock()

	if !s.clusterMatches(w, r) {
		return
	}
	var req struct {
		Body struct {
			ServiceInfo struct {
				State string `json:"state"`
			} `json:"ServiceInfo"`
		} `json:"Body"`
	}
	if err := json.Unmarshal(body, &req); err != nil || req.Body.ServiceInfo.State == "" {
		writeError(w, http.StatusBadRequest, "Invalid Request: Malformed Request Body")
		return
	}
	from := r.URL.Query().Get("ServiceInfo/state")
	for name, state := range s.Services {
		if from == "" || state == from {
			s.Services[name] = req.Body.ServiceInfo.State
		}
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"Requests": map[string]any{"id": 2, "status": "InProgress"},
	})
}

func (s *Server) getRequest(w http.ResponseWriter, r *http.Request) {
	s.Lock()
	defer s.Unlock()

	if !s.clusterMatches(w, r) {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request id")
		return
	}
	tasks, ok := s.Tasks[id]
	if !ok {
		writeError(w, http.StatusNotFound, "The requested resource doesn't exist: Request not found, request_id="+strconv.Itoa(id))
		return
	}

	items := make([]map[string]any, 0, len(tasks))
	i := 0
	for detail, status := range tasks {
		i++
		items = append(items, map[string]any{
			"Tasks": map[string]any{"id": i, "command_detail": detail, "status": status},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": items})
}

// clusterMatches must be called with the lock held.
func (s *Server) clusterMatches(w http.ResponseWriter, r *http.Request) bool {
	name := chi.URLParam(r, "name")
	if s.Cluster == "" || s.Cluster != name {
		writeError(w, http.StatusNotFound, "The requested resource doesn't exist: Cluster not found, clusterName="+name)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"status": status, "message": msg})
}
