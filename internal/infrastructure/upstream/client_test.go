package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
)

// fakeBackend imitates the Siteflow RPC backend: a sign-in endpoint over a
// bcrypt-seeded user table and a handful of rpc routes.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash seed password: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/sign-in", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			User struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			} `json:"user"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
			return
		}
		if req.User.Email != "admin@siteflow.se" || bcrypt.CompareHashAndPassword(hash, []byte(req.User.Password)) != nil {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
			return
		}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "u1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("backend-secret"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": token,
			"user": map[string]any{
				"id":        "u1",
				"email":     "admin@siteflow.se",
				"firstName": "Anna",
				"lastName":  "Admin",
				"role":      "siteflow_admin",
			},
		})
	})
	mux.HandleFunc("/rpc/project/read", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"p1","name":"Site relaunch"}]}`))
	})
	mux.HandleFunc("/rpc/project/create", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"errors":[{"message":"name has already been taken"}]}`))
	})
	mux.HandleFunc("/rpc/ticket/read", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	})
	return httptest.NewServer(mux)
}

func TestClient_SignIn(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	c := NewClient(srv.URL, srv.Client(), zerolog.Nop())

	res, err := c.SignIn(context.Background(), "admin@siteflow.se", "s3cret")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected a token")
	}
	if res.User.Role != domain.RoleAdmin {
		t.Fatalf("expected siteflow_admin role, got %s", res.User.Role)
	}
	if _, ok := domain.TokenExpiry(res.Token); !ok {
		t.Fatalf("issued token must carry an exp claim")
	}
}

func TestClient_SignIn_WrongPassword(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	c := NewClient(srv.URL, srv.Client(), zerolog.Nop())

	if _, err := c.SignIn(context.Background(), "admin@siteflow.se", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestClient_SignIn_NetworkFailure(t *testing.T) {
	srv := fakeBackend(t)
	srv.Close() // nothing listens any more
	c := NewClient(srv.URL, &http.Client{Timeout: time.Second}, zerolog.Nop())

	_, err := c.SignIn(context.Background(), "admin@siteflow.se", "s3cret")
	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("transport failure must stay distinct from rejection")
	}
}

func TestClient_Read_AttachesBearer(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	c := NewClient(srv.URL, srv.Client(), zerolog.Nop())

	data, err := c.Read(context.Background(), map[string]string{"Authorization": "Bearer good-token"}, domain.ResourceProject, nil)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var projects []map[string]any
	if err := json.Unmarshal(data, &projects); err != nil || len(projects) != 1 {
		t.Fatalf("unexpected payload: %s (%v)", data, err)
	}
}

func TestClient_Read_401MeansSessionExpired(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	c := NewClient(srv.URL, srv.Client(), zerolog.Nop())

	_, err := c.Read(context.Background(), map[string]string{"Authorization": "Bearer dead-token"}, domain.ResourceProject, nil)
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestClient_EnvelopeFailureIsPayloadError(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	c := NewClient(srv.URL, srv.Client(), zerolog.Nop())

	_, err := c.Create(context.Background(), nil, domain.ResourceProject, json.RawMessage(`{"name":"dup"}`))
	var payloadErr *domain.PayloadError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("expected PayloadError, got %v", err)
	}
	if payloadErr.Message != "name has already been taken" {
		t.Fatalf("backend message lost: %q", payloadErr.Message)
	}
}

func TestClient_Non2xxIsServerError(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	c := NewClient(srv.URL, srv.Client(), zerolog.Nop())

	_, err := c.Read(context.Background(), nil, domain.ResourceTicket, nil)
	var srvErr *domain.ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if srvErr.Status != http.StatusInternalServerError || srvErr.Message != "boom" {
		t.Fatalf("server error lost detail: %+v", srvErr)
	}
}
