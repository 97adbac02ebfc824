package catalogtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// Server is an in-process fake of the remote catalog service.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	products    []models.Product
	orderID     string
	failOrders  bool
	failListing bool
	calls       map[string]int
	orders      []models.OrderRequest
}

// NewServer starts a fake catalog serving products; it is closed when the test ends.
func NewServer(t *testing.T, products []models.Product) *Server {
	t.Helper()

	s := &Server{
		products: products,
		orderID:  "X",
		calls:    make(map[string]int),
	}

	r := chi.NewRouter()
	r.Get("/products", s.listProducts)
	r.Get("/products/{id}", s.getProduct)
	r.Post("/orders", s.createOrder)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// FailOrders makes POST /orders answer 500.
func (s *Server) FailOrders(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOrders = fail
}

// FailListing makes GET /products answer 502.
func (s *Server) FailListing(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failListing = fail
}

// SetOrderID sets the id returned by POST /orders.
func (s *Server) SetOrderID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderID = id
}

// Calls returns how many times "METHOD /path" was requested.
func (s *Server) Calls(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key]
}

// Orders returns the order payloads received so far.
func (s *Server) Orders() []models.OrderRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.OrderRequest(nil), s.orders...)
}

func (s *Server) record(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[r.Method+" "+r.URL.Path]++
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.record(r)

	s.mu.Lock()
	fail := s.failListing
	s.mu.Unlock()
	if fail {
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	category := r.URL.Query().Get("category")
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	s.record(r)

	id := chi.URLParam(r, "id")
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}
	for _, p := range s.products {
		if string(p.ID) == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Product not found"})
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	s.record(r)

	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	s.mu.Lock()
	fail, id := s.failOrders, s.orderID
	if !fail {
		s.orders = append(s.orders, req)
	}
	s.mu.Unlock()

	if fail {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
