// Package account holds the signed-in user and the per-user records kept in
// the key-value store.
package account

import (
	"strings"

	"github.com/google/uuid"
)

// Defaults applied when the login form is left blank.
const (
	DefaultName  = "Azure Learner"
	DefaultEmail = "learner@example.com"
)

// userNamespace seeds the name-based UUIDs used as user IDs.
var userNamespace = uuid.MustParse("5f0c6c1e-8a43-4c1b-9f4e-2b7f3d1a0104")

// User is the active identity.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials is what the login form collects.
type Credentials struct {
	Name  string
	Email string
}

// Authenticate accepts any credentials and returns the matching user. The ID
// is derived from the e-mail so the same address always maps to the same
// stored statistics.
func Authenticate(c Credentials) User {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = DefaultName
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		email = DefaultEmail
	}
	id := uuid.NewSHA1(userNamespace, []byte(strings.ToLower(email)))
	return User{ID: id.String(), Name: name, Email: email}
}
