package handler_test

import (
	"net/http"
	"testing"

	"github.com/DronKashyap/DK-PropertyListings/internal/auth"
)

func TestSignup(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodPost, "/signup", "", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	assertStatus(t, w, http.StatusCreated)

	body := decodeBody(t, w)
	if body["message"] != "User created successfully" {
		t.Errorf("message = %v", body["message"])
	}

	user, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("no user in response: %v", body)
	}
	if user["username"] != "alice" {
		t.Errorf("username = %v", user["username"])
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password hash leaked into response")
	}
	if user["avatar"] == "" {
		t.Error("default avatar not applied")
	}

	// the returned token must verify to the new user
	token, _ := body["token"].(string)
	verifier := auth.NewVerifier(testSecret)
	p, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("verify signup token: %v", err)
	}
	if p.Email != "alice@example.com" {
		t.Errorf("token email = %q", p.Email)
	}
	if float64(p.UserID) != user["id"] {
		t.Errorf("token userId %d != user id %v", p.UserID, user["id"])
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice@example.com")

	w := ts.request(t, http.MethodPost, "/signup", "", map[string]interface{}{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "password123",
	})
	assertStatus(t, w, http.StatusBadRequest)
	assertMessage(t, w, "User already exists")
}

func TestSignup_InvalidInput(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing username", map[string]interface{}{"email": "a@b.com", "password": "password123"}},
		{"bad email", map[string]interface{}{"username": "a", "email": "not-an-email", "password": "password123"}},
		{"short password", map[string]interface{}{"username": "a", "email": "a@b.com", "password": "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.request(t, http.MethodPost, "/signup", "", tt.body)
			assertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestSignin(t *testing.T) {
	ts := newTestServer(t)
	u, _ := ts.seedUser(t, "alice@example.com")

	w := ts.request(t, http.MethodPost, "/signin", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if body["message"] != "Signin successful" {
		t.Errorf("message = %v", body["message"])
	}
	token, _ := body["token"].(string)
	p, err := auth.NewVerifier(testSecret).Verify(token)
	if err != nil {
		t.Fatalf("verify signin token: %v", err)
	}
	if p.UserID != u.ID {
		t.Errorf("token userId = %d, want %d", p.UserID, u.ID)
	}
}

func TestSignin_BadCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice@example.com")

	// wrong password and unknown email get the same response
	w := ts.request(t, http.MethodPost, "/signin", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrongpassword",
	})
	assertStatus(t, w, http.StatusUnauthorized)
	assertMessage(t, w, "Invalid email or password")

	w = ts.request(t, http.MethodPost, "/signin", "", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assertStatus(t, w, http.StatusUnauthorized)
	assertMessage(t, w, "Invalid email or password")
}

func TestSignout(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.seedUser(t, "alice@example.com")

	w := ts.request(t, http.MethodPost, "/signout", token, nil)
	assertStatus(t, w, http.StatusOK)
	assertMessage(t, w, "Signout successful")

	w = ts.request(t, http.MethodPost, "/signout", "", nil)
	assertStatus(t, w, http.StatusUnauthorized)
}

func TestUpdateUser(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.seedUser(t, "alice@example.com")

	w := ts.request(t, http.MethodPut, "/user", token, map[string]interface{}{
		"username": "alice-renamed",
	})
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	user, _ := body["user"].(map[string]interface{})
	if user["username"] != "alice-renamed" {
		t.Errorf("username = %v", user["username"])
	}
	if user["email"] != "alice@example.com" {
		t.Errorf("email changed unexpectedly: %v", user["email"])
	}
}

func TestUpdateUser_InvalidEmail(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.seedUser(t, "alice@example.com")

	w := ts.request(t, http.MethodPut, "/user", token, map[string]interface{}{
		"email": "not-an-email",
	})
	assertStatus(t, w, http.StatusBadRequest)
}

func TestDeleteUser(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.seedUser(t, "alice@example.com")

	w := ts.request(t, http.MethodDelete, "/user", token, nil)
	assertStatus(t, w, http.StatusOK)
	assertMessage(t, w, "User deleted successfully")

	// the account is gone, signin must fail
	w = ts.request(t, http.MethodPost, "/signin", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assertStatus(t, w, http.StatusUnauthorized)
}
