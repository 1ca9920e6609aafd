package service

import (
	"context"
	"time"

	"Postbook/internal/model"
	"Postbook/internal/pkg"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserView is a user as served to clients; the password digest never
// leaves the service.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserService struct {
	users    UserStore
	sessions SessionStore
}

func NewUserService(users UserStore, sessions SessionStore) *UserService {
	return &UserService{users: users, sessions: sessions}
}

// Signup registers a NORMAL user and returns a fresh identity token.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (string, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", pkg.BadRequest("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &model.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Role:      model.RoleNormal,
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	return s.issueToken(ctx, user)
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", pkg.NotFound("email not found")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", pkg.BadRequest("invalid email or password")
	}

	return s.issueToken(ctx, user)
}

func (s *UserService) List(ctx context.Context) ([]UserView, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(&u))
	}
	return views, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*UserView, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, pkg.NotFound("user not found")
	}
	view := toUserView(user)
	return &view, nil
}

// issueToken generates the identity token and records it as the user's
// active session.
func (s *UserService) issueToken(ctx context.Context, user *model.User) (string, error) {
	token, err := pkg.GenerateToken(user.ID, user.Name, user.Role)
	if err != nil {
		return "", err
	}
	if err := s.sessions.Store(ctx, user.ID, token); err != nil {
		return "", err
	}
	return token, nil
}

func toUserView(user *model.User) UserView {
	return UserView{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
