package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	profiledomain "github.com/utilitech/utilicore/internal/profile/domain"
)

type RegisterRequest struct {
	Email      string
	Password   string
	Name       string
	Role       string
	ProfileID  string
	Department string
	Title      string
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type ResolveUserRequest struct {
	Token string
}

type GetUserRequest struct {
	ID string
}

type ListUserResponse struct {
	Users []User `json:"users"`
}

// ProfileInfoResponse bundles a user with their profile, the master profile
// above it, and the other users attached to the same master.
type ProfileInfoResponse struct {
	User          User                   `json:"user"`
	Profile       *profiledomain.Profile `json:"profile,omitempty"`
	MasterProfile *profiledomain.Profile `json:"master_profile,omitempty"`
	RelatedUsers  []User                 `json:"related_users"`
}

type Service interface {
	Register(context.Context, RegisterRequest) (User, error)
	Login(context.Context, LoginRequest) (LoginResponse, error)
	ResolveUser(context.Context, ResolveUserRequest) (User, error)
	List(context.Context) (ListUserResponse, error)
	GetByID(context.Context, GetUserRequest) (User, error)
	ProfileInfo(ctx context.Context, userID snowflake.ID) (ProfileInfoResponse, error)
	ProfileDetails(context.Context, GetUserRequest) (ProfileInfoResponse, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserExists         = errors.New("user_exists")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidRole        = errors.New("invalid_role")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
)
