// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

// Package buybottest runs an in-process fake of the buybot service for
// tests. The fake serves every endpoint the CLI consumes, records each
// request it receives, and lets tests script the device-login poll
// sequence and the replies to mutating calls.
package buybottest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zinc-io/buybot/lib/buybot"
)

// Call is one request received by the fake.
type Call struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          []byte
}

// Reply is a scripted HTTP response. A zero Status means 200.
type Reply struct {
	Status int
	Body   any
}

// Pending and Rejected are the common poll replies.
var (
	Pending  = Reply{Body: map[string]any{"pending": true}}
	Rejected = Reply{Status: http.StatusNotFound}
)

// Approved returns the poll reply that completes a login.
func Approved(userID, token string) Reply {
	return Reply{Body: map[string]any{"token": token, "user_id": userID}}
}

// Server is a fake buybot service. Zero-valued configuration represents
// a healthy service with no data.
type Server struct {
	*httptest.Server

	mu sync.Mutex

	token    string
	identity buybot.Identity
	products []buybot.Product
	orders   []buybot.Order

	loginReply   *Reply
	pollReplies  []Reply
	approveReply *Reply
	rejectReply  *Reply
	attemptReply *Reply

	calls []Call
}

// New starts a fake service that is closed when the test ends. token is
// the only bearer token /v0 endpoints accept.
func New(t *testing.T, token string) *Server {
	t.Helper()
	server := &Server{
		token:    token,
		identity: buybot.Identity{Name: "Test Operator"},
	}
	server.Server = httptest.NewServer(server.routes())
	t.Cleanup(server.Close)
	return server
}

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(s.record)

	router.Post("/cli/auth", s.startLogin)
	router.Get("/cli/poll/{session}", s.poll)

	router.Route("/v0", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/users/current", s.currentUser)
		r.Get("/products", s.listProducts)
		r.Post("/products/approve", s.productAction(func() *Reply { return s.approveReply }))
		r.Post("/products/reject", s.productAction(func() *Reply { return s.rejectReply }))
		r.Get("/orders", s.listOrders)
		r.Post("/orders/attempt", s.attempt)
		r.Post("/orders/attempt/{order}", s.attempt)
	})
	return router
}

// SetIdentity sets the /v0/users/current reply.
func (s *Server) SetIdentity(identity buybot.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
}

// SetProducts sets the product collection.
func (s *Server) SetProducts(products ...buybot.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

// SetOrders sets the order collection.
func (s *Server) SetOrders(orders ...buybot.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
}

// SetLoginReply overrides the /cli/auth reply.
func (s *Server) SetLoginReply(reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginReply = &reply
}

// SetPollReplies scripts the poll sequence. Each poll consumes one
// reply; the last reply repeats once the script is exhausted.
func (s *Server) SetPollReplies(replies ...Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pollReplies = replies
}

// SetApproveReply overrides the approve reply.
func (s *Server) SetApproveReply(reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.approveReply = &reply
}

// SetRejectReply overrides the reject reply.
func (s *Server) SetRejectReply(reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectReply = &reply
}

// SetAttemptReply overrides the order-attempt reply.
func (s *Server) SetAttemptReply(reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attemptReply = &reply
}

// BrowserURL is the authorization page the fake hands out.
func (s *Server) BrowserURL() string { return s.URL + "/cli/browser/session-1" }

// PollURL is the poll endpoint the fake hands out.
func (s *Server) PollURL() string { return s.URL + "/cli/poll/session-1" }

// Calls returns every request received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns the requests received for method and path.
func (s *Server) CallsTo(method, path string) []Call {
	var matched []Call
	for _, call := range s.Calls() {
		if call.Method == method && call.Path == path {
			matched = append(matched, call)
		}
	}
	return matched
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)
		request.Body.Close()
		request.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Method:        request.Method,
			Path:          request.URL.Path,
			Query:         request.URL.RawQuery,
			Authorization: request.Header.Get("Authorization"),
			Body:          body,
		})
		s.mu.Unlock()

		next.ServeHTTP(writer, request)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		presented := strings.TrimSpace(strings.TrimPrefix(request.Header.Get("Authorization"), "Bearer"))
		if s.token == "" || presented != s.token {
			writeJSON(writer, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			return
		}
		next.ServeHTTP(writer, request)
	})
}

func (s *Server) startLogin(writer http.ResponseWriter, request *http.Request) {
	s.mu.Lock()
	reply := s.loginReply
	s.mu.Unlock()
	if reply != nil {
		writeReply(writer, *reply)
		return
	}
	if request.URL.Query().Get("hostname") == "" {
		writeJSON(writer, http.StatusBadRequest, map[string]string{"message": "hostname is required"})
		return
	}
	writeJSON(writer, http.StatusOK, buybot.DeviceAuthorization{
		BrowserURL: s.BrowserURL(),
		PollURL:    s.PollURL(),
	})
}

func (s *Server) poll(writer http.ResponseWriter, request *http.Request) {
	s.mu.Lock()
	reply := Pending
	if len(s.pollReplies) > 0 {
		reply = s.pollReplies[0]
		if len(s.pollReplies) > 1 {
			s.pollReplies = s.pollReplies[1:]
		}
	}
	s.mu.Unlock()
	writeReply(writer, reply)
}

func (s *Server) currentUser(writer http.ResponseWriter, request *http.Request) {
	s.mu.Lock()
	identity := s.identity
	s.mu.Unlock()
	writeJSON(writer, http.StatusOK, identity)
}

func (s *Server) listProducts(writer http.ResponseWriter, request *http.Request) {
	s.mu.Lock()
	products := append([]buybot.Product{}, s.products...)
	s.mu.Unlock()
	writeJSON(writer, http.StatusOK, products)
}

func (s *Server) listOrders(writer http.ResponseWriter, request *http.Request) {
	s.mu.Lock()
	orders := append([]buybot.Order{}, s.orders...)
	s.mu.Unlock()
	writeJSON(writer, http.StatusOK, orders)
}

// productAction validates the request shape and returns the scripted
// reply, or an empty 200.
func (s *Server) productAction(scripted func() *Reply) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var body struct {
			IDs     []string `json:"ids"`
			Attempt *bool    `json:"attempt"`
		}
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil || body.Attempt == nil {
			writeJSON(writer, http.StatusBadRequest, map[string]string{"message": "malformed request"})
			return
		}
		s.mu.Lock()
		reply := scripted()
		s.mu.Unlock()
		if reply != nil {
			writeReply(writer, *reply)
			return
		}
		writeJSON(writer, http.StatusOK, map[string]any{})
	}
}

func (s *Server) attempt(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Retailer string `json:"retailer"`
	}
	if err := json.NewDecoder(request.Body).Decode(&body); err != nil || body.Retailer == "" {
		writeJSON(writer, http.StatusBadRequest, map[string]string{"message": "retailer is required"})
		return
	}

	s.mu.Lock()
	reply := s.attemptReply
	s.mu.Unlock()
	if reply != nil {
		writeReply(writer, *reply)
		return
	}

	orderID := chi.URLParam(request, "order")
	if orderID == "" {
		orderID = "order-new"
	}
	writeJSON(writer, http.StatusOK, buybot.Order{ID: orderID, Retailer: body.Retailer})
}

func writeReply(writer http.ResponseWriter, reply Reply) {
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	if raw, ok := reply.Body.(string); ok {
		writer.WriteHeader(status)
		io.WriteString(writer, raw)
		return
	}
	writeJSON(writer, status, reply.Body)
}

func writeJSON(writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if body != nil {
		json.NewEncoder(writer).Encode(body)
	}
}
