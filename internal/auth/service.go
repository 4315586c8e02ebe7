package auth

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/storage"

	"github.com/google/uuid"
)

// Service is the credential and session provider. Users live under the
// global users key; the signed-in user under the currentUser key.
type Service struct {
	kv  storage.KV
	now func() time.Time
	log *slog.Logger
}

// NewService creates a Service over kv. A nil logger discards output.
func NewService(kv storage.KV, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{kv: kv, now: time.Now, log: logger.With("component", "auth")}
}

// Register creates a new user without signing them in.
func (s *Service) Register(email, password, name string) (*models.User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, &models.ValidationError{Field: "password", Reason: "must not be empty"}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	users, err := s.users()
	if err != nil {
		return nil, err
	}
	if indexByEmail(users, email) >= 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrDuplicateUser, email)
	}

	hash, err := HashPassword(password)
	if err != nil {
		if IsPasswordTooLong(err) {
			return nil, &models.ValidationError{Field: "password", Reason: "must be at most 72 bytes"}
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate user id: %w", err)
	}
	user := models.User{
		ID:           id.String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.saveUsers(append(users, user)); err != nil {
		return nil, err
	}
	s.log.Info("user registered", "user_id", user.ID)

	public := user.Public()
	return &public, nil
}

// SignUp registers a new user and signs them in.
func (s *Service) SignUp(email, password, name string) (*models.Session, error) {
	user, err := s.Register(email, password, name)
	if err != nil {
		return nil, err
	}
	return s.activate(*user)
}

// SignIn verifies credentials and makes the matching user current. Unknown
// email and wrong password both yield ErrAuth.
func (s *Service) SignIn(email, password string) (*models.Session, error) {
	users, err := s.users()
	if err != nil {
		return nil, err
	}
	i := indexByEmail(users, normalizeEmail(email))
	if i < 0 || !CheckPassword(password, users[i].PasswordHash) {
		s.log.Warn("sign in rejected")
		return nil, models.ErrAuth
	}
	return s.activate(users[i].Public())
}

// SignOut clears the current user. Signing out twice is harmless.
func (s *Service) SignOut() error {
	if err := s.kv.Delete(storage.CurrentUserKey); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// CurrentSession returns the active session, or nil when nobody is signed in.
func (s *Service) CurrentSession() (*models.Session, error) {
	var user models.User
	ok, err := storage.LoadJSON(s.kv, storage.CurrentUserKey, &user)
	if err != nil || !ok {
		return nil, err
	}
	return &models.Session{User: user}, nil
}

// UpdateProfile changes the current user's name and email. Empty arguments
// keep the existing value.
func (s *Service) UpdateProfile(name, email string) (*models.Session, error) {
	i, users, err := s.currentIndex()
	if err != nil {
		return nil, err
	}

	updated := users[i]
	if name = strings.TrimSpace(name); name != "" {
		updated.Name = name
	}
	if email != "" {
		email = normalizeEmail(email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		if j := indexByEmail(users, email); j >= 0 && j != i {
			return nil, fmt.Errorf("%w: %s", models.ErrDuplicateUser, email)
		}
		updated.Email = email
	}

	users[i] = updated
	if err := s.saveUsers(users); err != nil {
		return nil, err
	}
	return s.activate(updated.Public())
}

// DeleteAccount removes the current user and signs out. The user's records
// are left in place.
func (s *Service) DeleteAccount() (*models.User, error) {
	i, users, err := s.currentIndex()
	if err != nil {
		return nil, err
	}
	removed := users[i].Public()

	if err := s.saveUsers(slices.Delete(users, i, i+1)); err != nil {
		return nil, err
	}
	if err := s.SignOut(); err != nil {
		return nil, err
	}
	s.log.Info("user deleted", "user_id", removed.ID)
	return &removed, nil
}

func (s *Service) activate(user models.User) (*models.Session, error) {
	if err := storage.SaveJSON(s.kv, storage.CurrentUserKey, user); err != nil {
		return nil, fmt.Errorf("store current user: %w", err)
	}
	s.log.Debug("session started", "user_id", user.ID)
	return &models.Session{User: user}, nil
}

func (s *Service) currentIndex() (int, []models.User, error) {
	sess, err := s.CurrentSession()
	if err != nil {
		return -1, nil, err
	}
	if sess == nil {
		return -1, nil, models.ErrSignedOut
	}
	users, err := s.users()
	if err != nil {
		return -1, nil, err
	}
	i := slices.IndexFunc(users, func(u models.User) bool { return u.ID == sess.User.ID })
	if i < 0 {
		return -1, nil, fmt.Errorf("%w: user %s", models.ErrNotFound, sess.User.ID)
	}
	return i, users, nil
}

func (s *Service) users() ([]models.User, error) {
	var users []models.User
	if _, err := storage.LoadJSON(s.kv, storage.UsersKey, &users); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func (s *Service) saveUsers(users []models.User) error {
	if err := storage.SaveJSON(s.kv, storage.UsersKey, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func indexByEmail(users []models.User, email string) int {
	return slices.IndexFunc(users, func(u models.User) bool { return u.Email == email })
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return &models.ValidationError{Field: "email", Reason: "must be an email address"}
	}
	return nil
}
