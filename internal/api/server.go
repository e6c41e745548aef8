package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bryanchriswhite/hyprwatch/internal/hypr"
	"github.com/bryanchriswhite/hyprwatch/internal/logger"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Commander sends commands to the compositor. *hypr.Controller implements it.
type Commander interface {
	Invoke(ctx context.Context, cmd hypr.Command) (string, error)
}

// Server represents the HTTP API server
type Server struct {
	router    *mux.Router
	commander Commander
	hub       *Hub
	upgrader  websocket.Upgrader
}

// NewServer creates a new API server
func NewServer(commander Commander, hub *Hub) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		commander: commander,
		hub:       hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// State
	api.HandleFunc("/state", s.handleGetState).Methods("GET")
	api.HandleFunc("/state/stream", s.handleStateStream)

	// Commands
	api.HandleFunc("/dispatch", s.handleDispatch).Methods("POST")
	api.HandleFunc("/notify", s.handleNotify).Methods("POST")
	api.HandleFunc("/dismiss", s.handleDismiss).Methods("POST")
	api.HandleFunc("/info/{kind}", s.handleInfo).Methods("GET")
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return s.enableCORS(s.router)
}

// ListenAndServe serves on port until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithComponent("api").Info().Int("port", port).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// enableCORS adds CORS headers
func (s *Server) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// HTTP Handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.hub.Latest())
}

func (s *Server) handleStateStream(w http.ResponseWriter, r *http.Request) {
	log := logger.WithComponent("api")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)

	if err := conn.WriteJSON(s.hub.Latest()); err != nil {
		return
	}

	// The client never sends; reading only detects disconnects.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				log.Debug().Err(err).Msg("WebSocket client gone")
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}

type commandResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) invoke(w http.ResponseWriter, r *http.Request, cmd hypr.Command) {
	resp, err := s.commander.Invoke(r.Context(), cmd)
	if err != nil {
		logger.WithComponent("api").Warn().Err(err).Str("command", hypr.Encode(cmd)).Msg("Command failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{Response: resp})
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Args string `json:"args"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Args == "" {
		http.Error(w, "args is required", http.StatusBadRequest)
		return
	}
	s.invoke(w, r, hypr.Dispatch{Args: req.Args})
}

type notifyRequest struct {
	Icon       string `json:"icon"`
	DurationMS uint32 `json:"duration_ms"`
	Color      string `json:"color"`
	RGBA       bool   `json:"rgba"`
	Message    string `json:"message"`
	FontSize   uint32 `json:"font_size"`
}

func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	req := notifyRequest{DurationMS: 5000, Color: "ffffff"}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	icon, err := hypr.ParseIcon(req.Icon)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	color := hypr.RGB(req.Color)
	if req.RGBA {
		color = hypr.RGBA(req.Color)
	}
	msg := hypr.Plain(req.Message)
	if req.FontSize > 0 {
		msg = hypr.WithFontSize(req.FontSize, req.Message)
	}
	s.invoke(w, r, hypr.Notify{
		Icon:       icon,
		DurationMS: req.DurationMS,
		Color:      color,
		Message:    msg,
	})
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Count uint32 `json:"count"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	scope := hypr.DismissAll()
	if req.Count > 0 {
		scope = hypr.DismissRecent(req.Count)
	}
	s.invoke(w, r, hypr.DismissNotify{Scope: scope})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	kind, err := hypr.ParseInfoKind(mux.Vars(r)["kind"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	arg := r.URL.Query().Get("arg")
	if kind.TakesArg() && arg == "" {
		http.Error(w, fmt.Sprintf("%s requires ?arg=", kind), http.StatusBadRequest)
		return
	}

	resp, err := s.commander.Invoke(r.Context(), hypr.Info{Kind: kind, Arg: arg})
	if err != nil {
		logger.WithComponent("api").Warn().Err(err).Str("kind", string(kind)).Msg("Info query failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	if json.Valid([]byte(resp)) {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Write([]byte(resp))
}
