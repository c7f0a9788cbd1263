package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmcdole/stacks/internal/domain"
)

// Login failures. Both wrap domain.ErrAuthFailed.
var (
	ErrMissingCredentials = fmt.Errorf("%w: email and password are required", domain.ErrAuthFailed)
	ErrInvalidCredentials = fmt.Errorf("%w: credentials do not match a demo user", domain.ErrAuthFailed)
)

// Credentials is the login form
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// User is a known account
type User struct {
	Name  string
	Email string
}

// DemoAccount is a user together with a plaintext password, used to build a
// Directory
type DemoAccount struct {
	User
	Password string
}

// DemoAccounts returns the accounts accepted by the demo login form
func DemoAccounts() []DemoAccount {
	return []DemoAccount{
		{User: User{Name: "Emma Parker", Email: "emma@demo.com"}, Password: "Emma123!"},
		{User: User{Name: "James Carter", Email: "james@demo.com"}, Password: "Carter#45"},
	}
}

type account struct {
	user User
	hash []byte
}

// Directory checks login credentials against a fixed set of accounts
type Directory struct {
	accounts []account
	validate *validator.Validate
	logger   *slog.Logger
}

// NewDirectory hashes the passwords of accounts and returns a Directory
// accepting them
func NewDirectory(accounts []DemoAccount, logger *slog.Logger) (*Directory, error) {
	if logger == nil {
		logger = slog.Default()
	}

	d := &Directory{validate: validator.New(), logger: logger}
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.MinCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", a.Email, err)
		}
		d.accounts = append(d.accounts, account{user: a.User, hash: hash})
	}
	return d, nil
}

// Authenticate returns the user matching creds
func (d *Directory) Authenticate(creds Credentials) (User, error) {
	creds.Email = strings.TrimSpace(creds.Email)

	if err := d.validate.Struct(creds); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.Tag() == "required" {
					return User{}, ErrMissingCredentials
				}
			}
		}
		d.logger.Debug("login form rejected", "error", err)
		return User{}, ErrInvalidCredentials
	}

	for _, a := range d.accounts {
		if !strings.EqualFold(a.user.Email, creds.Email) {
			continue
		}
		if bcrypt.CompareHashAndPassword(a.hash, []byte(creds.Password)) == nil {
			d.logger.Info("login succeeded", "email", a.user.Email)
			return a.user, nil
		}
		break
	}

	d.logger.Info("login failed", "email", creds.Email)
	return User{}, ErrInvalidCredentials
}

// Users returns the known users, for display on the login form
func (d *Directory) Users() []User {
	users := make([]User, 0, len(d.accounts))
	for _, a := range d.accounts {
		users = append(users, a.user)
	}
	return users
}

// Message returns the form-level text shown for a login error
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredentials):
		return "Please enter your email and password."
	case errors.Is(err, domain.ErrAuthFailed):
		return "Invalid credentials. Try a demo user."
	default:
		return err.Error()
	}
}
