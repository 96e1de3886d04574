package api

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// defaultTokenTTL is the access token lifetime when none is configured.
const defaultTokenTTL = 3600 * time.Second

// ticketTTL is how long a WebSocket ticket is valid.
const ticketTTL = 60 * time.Second

// loginRequest is the request body for POST /auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the response body for POST /auth/login.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// handleLogin authenticates against the configured admin credentials and
// returns a signed JWT.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if !s.validCredentials(req.Username, req.Password) {
		writeUnauthorized(w, "invalid credentials")
		return
	}

	ttl := time.Duration(s.secCfg.JWT.AccessTokenTTL) * time.Second
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	claims := jwt.MapClaims{
		"sub": req.Username,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secCfg.JWT.Secret))
	if err != nil {
		writeInternalError(w, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(ttl.Seconds()),
	})
}

// validCredentials compares the supplied credentials with the configured
// admin account in constant time.
func (s *Server) validCredentials(username, password string) bool {
	if s.secCfg.Admin.Username == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.secCfg.Admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.secCfg.Admin.Password)) == 1
	return userOK && passOK
}

// handleWSTicket generates a single-use WebSocket authentication ticket.
// The client uses this ticket to authenticate the WebSocket connection
// without exposing the JWT in the URL.
func (s *Server) handleWSTicket(w http.ResponseWriter, r *http.Request) {
	user, _ := r.Context().Value(ctxKeyUser).(string) //nolint:errcheck // Empty user is acceptable

	ticket := generateTicket()
	s.tickets.add(ticket, user)

	writeJSON(w, http.StatusOK, map[string]any{
		"ticket":     ticket,
		"expires_in": int(ticketTTL.Seconds()),
	})
}

// ticketStore holds pending WebSocket authentication tickets.
// Tickets are single-use and expire after ticketTTL.
type ticketStore struct {
	tickets map[string]ticketEntry
	mu      sync.Mutex
}

type ticketEntry struct {
	userID    string
	expiresAt time.Time
}

func newTicketStore() *ticketStore {
	return &ticketStore{tickets: make(map[string]ticketEntry)}
}

func (t *ticketStore) add(ticket, userID string) {
	t.mu.Lock()
	t.tickets[ticket] = ticketEntry{
		userID:    userID,
		expiresAt: time.Now().Add(ticketTTL),
	}
	t.mu.Unlock()
}

// consume validates a ticket and removes it (single-use).
func (t *ticketStore) consume(ticket string) (ticketEntry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.tickets[ticket]
	if !ok {
		return ticketEntry{}, false
	}
	delete(t.tickets, ticket)

	if time.Now().After(entry.expiresAt) {
		return ticketEntry{}, false
	}
	return entry, true
}

// cleanLoop removes expired tickets periodically until the context is cancelled.
func (t *ticketStore) cleanLoop(ctx context.Context) {
	ticker := time.NewTicker(ticketTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.mu.Lock()
			now := time.Now()
			for ticket, entry := range t.tickets {
				if now.After(entry.expiresAt) {
					delete(t.tickets, ticket)
				}
			}
			t.mu.Unlock()
		}
	}
}

// ticketBytes is the number of random bytes used for WebSocket tickets.
const ticketBytes = 32

// generateTicket creates a cryptographically random ticket string.
func generateTicket() string {
	b := make([]byte, ticketBytes)
	//nolint:errcheck // crypto/rand.Read always returns len(b) on supported platforms
	rand.Read(b)
	return hex.EncodeToString(b)
}
