// Package models defines the client-side data shapes exchanged with the
// back-office API.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEmptyField is returned by client-side validation when a required form
// field is blank. Such requests never reach the network.
var ErrEmptyField = errors.New("required field is empty")

// Identity is the profile of the logged-in user as served by /profile/.
type Identity struct {
	ID        int64  `json:"id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName prefers "First Last" and falls back to the username.
func (i Identity) DisplayName() string {
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	if name == "" {
		return i.Username
	}
	return name
}

// LoginResult is the body returned by POST /login/: the token plus whatever
// identity fields the backend chose to include. Its shape is not validated.
type LoginResult struct {
	Token string
	Identity
}

// UnmarshalJSON reads the token and the identity fields from the same flat
// object.
func (r *LoginResult) UnmarshalJSON(b []byte) error {
	var tok struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(b, &tok); err != nil {
		return err
	}
	var id Identity
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	r.Token = tok.Token
	r.Identity = id
	return nil
}

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate performs the required-field check done before submitting.
func (c Credentials) Validate() error {
	return requireFields(map[string]string{"username": c.Username, "password": c.Password})
}

// Registration is the sign-up form accepted by POST /register/.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RegistrationResult is the body returned by POST /register/.
type RegistrationResult struct {
	User    Identity `json:"user"`
	Message string   `json:"message"`
}

// ErrPasswordMismatch is returned when the two password fields differ.
var ErrPasswordMismatch = errors.New("password fields didn't match")

func (r Registration) Validate() error {
	if err := requireFields(map[string]string{
		"username":   r.Username,
		"email":      r.Email,
		"password":   r.Password,
		"first_name": r.FirstName,
		"last_name":  r.LastName,
	}); err != nil {
		return err
	}
	if r.Password != r.Password2 {
		return ErrPasswordMismatch
	}
	return nil
}

// PasswordChange is the body of POST /change-password/.
type PasswordChange struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (p PasswordChange) Validate() error {
	return requireFields(map[string]string{"old_password": p.OldPassword, "new_password": p.NewPassword})
}

func requireFields(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: %s", ErrEmptyField, strings.Join(missing, ", "))
}
