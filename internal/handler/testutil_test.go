package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/DronKashyap/DK-PropertyListings/internal/auth"
	"github.com/DronKashyap/DK-PropertyListings/internal/handler"
	"github.com/DronKashyap/DK-PropertyListings/internal/middleware"
	"github.com/DronKashyap/DK-PropertyListings/internal/model"
	"github.com/DronKashyap/DK-PropertyListings/internal/repository"
	"github.com/DronKashyap/DK-PropertyListings/internal/service"
	"github.com/DronKashyap/DK-PropertyListings/internal/testutil"
)

const testSecret = "test-secret"

type testServer struct {
	router   *gin.Engine
	db       *sqlx.DB
	users    *repository.UserRepository
	listings *repository.ListingRepository
	issuer   *auth.Issuer
}

// newTestServer wires the real handlers over an in-memory database. The
// photo handler is left out: it needs a running mongo and its ownership gate
// is the same AuthorizeMutation covered by the service tests.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	users := repository.NewUserRepository(db)
	listings := repository.NewListingRepository(db)
	access := service.NewListingAccess(listings)
	issuer := auth.NewIssuer(testSecret, time.Hour)
	verifier := auth.NewVerifier(testSecret)

	r := gin.New()
	public := r.Group("/")
	protected := r.Group("/")
	protected.Use(middleware.RequireAuth(verifier))

	(&handler.AuthHandler{Users: users, Issuer: issuer}).RegisterRoutes(public, protected)
	(&handler.ListingHandler{Repo: listings, Access: access}).RegisterRoutes(public, protected)

	return &testServer{router: r, db: db, users: users, listings: listings, issuer: issuer}
}

func (ts *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// seedUser creates a user with password "password123" and returns it with a
// valid token.
func (ts *testServer) seedUser(t *testing.T, email string) (*model.User, string) {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &model.User{Username: "tester", Email: email, Password: hash, Avatar: model.DefaultAvatar}
	if err := ts.users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := ts.issuer.Issue(u.ID, u.Email)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return u, token
}

func (ts *testServer) seedListing(t *testing.T, ownerID int64, name string) *model.Listing {
	t.Helper()
	l := &model.Listing{
		UserID:      ownerID,
		Name:        name,
		Description: "desc",
		Address:     "addr",
		Type:        "rent",
		ImageURLs:   []string{"https://img.example.com/1.jpg"},
	}
	if err := ts.listings.Create(context.Background(), l); err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	return l
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, want, w.Body.String())
	}
}

func assertMessage(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	body := decodeBody(t, w)
	if body["message"] != want {
		t.Fatalf("message = %v, want %q", body["message"], want)
	}
}
