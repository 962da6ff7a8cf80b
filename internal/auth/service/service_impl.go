package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/utilitech/utilicore/internal/auth/domain"
	"github.com/utilitech/utilicore/internal/auth/password"
	"github.com/utilitech/utilicore/internal/auth/token"
	profiledomain "github.com/utilitech/utilicore/internal/profile/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	ProfileRepo profiledomain.Repository
	Tokens      *token.Issuer
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	profileRepo profiledomain.Repository
	tokens      *token.Issuer
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("auth.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		profileRepo: p.ProfileRepo,
		tokens:      p.Tokens,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, domain.ErrInvalidEmail
	}
	if strings.TrimSpace(req.Password) == "" {
		return domain.User{}, domain.ErrInvalidPassword
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.User{}, domain.ErrInvalidName
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return domain.User{}, domain.ErrInvalidRole
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.User{}, err
	}
	if existing != nil {
		return domain.User{}, domain.ErrUserExists
	}

	var profileID *snowflake.ID
	if raw := strings.TrimSpace(req.ProfileID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return domain.User{}, domain.ErrInvalidID
		}
		profileID = &id
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
		ProfileID:    profileID,
		Department:   strings.TrimSpace(req.Department),
		Title:        strings.TrimSpace(req.Title),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		return domain.User{}, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	return user, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	// A disabled account fails the same way as a wrong password.
	if user == nil || !user.Active {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}
	if !password.Verify(req.Password, user.PasswordHash) {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		User:        *user,
	}, nil
}

func (s *Service) ResolveUser(ctx context.Context, req domain.ResolveUserRequest) (domain.User, error) {
	userID, err := s.tokens.Parse(req.Token)
	if err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByID(ctx, s.db, userID)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil || !user.Active {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return *user, nil
}

func (s *Service) List(ctx context.Context) (domain.ListUserResponse, error) {
	users, err := s.repo.List(ctx, s.db)
	if err != nil {
		return domain.ListUserResponse{}, err
	}
	return domain.ListUserResponse{Users: users}, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetUserRequest) (domain.User, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.User{}, domain.ErrInvalidID
	}
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrNotFound
	}
	return *user, nil
}

func (s *Service) ProfileInfo(ctx context.Context, userID snowflake.ID) (domain.ProfileInfoResponse, error) {
	user, err := s.repo.FindByID(ctx, s.db, userID)
	if err != nil {
		return domain.ProfileInfoResponse{}, err
	}
	if user == nil {
		return domain.ProfileInfoResponse{}, domain.ErrNotFound
	}
	return s.buildProfileInfo(ctx, *user)
}

func (s *Service) ProfileDetails(ctx context.Context, req domain.GetUserRequest) (domain.ProfileInfoResponse, error) {
	user, err := s.GetByID(ctx, req)
	if err != nil {
		return domain.ProfileInfoResponse{}, err
	}
	return s.buildProfileInfo(ctx, user)
}

func (s *Service) buildProfileInfo(ctx context.Context, user domain.User) (domain.ProfileInfoResponse, error) {
	resp := domain.ProfileInfoResponse{User: user, RelatedUsers: []domain.User{}}
	if user.ProfileID == nil {
		return resp, nil
	}

	profile, err := s.profileRepo.FindByID(ctx, s.db, *user.ProfileID)
	if err != nil {
		return domain.ProfileInfoResponse{}, err
	}
	if profile == nil {
		return resp, nil
	}
	resp.Profile = profile

	masterID := profile.ID
	if profile.MasterProfileID != nil {
		master, err := s.profileRepo.FindByID(ctx, s.db, *profile.MasterProfileID)
		if err != nil {
			return domain.ProfileInfoResponse{}, err
		}
		if master != nil {
			resp.MasterProfile = master
			masterID = master.ID
		}
	} else if profile.IsMasterProfile {
		resp.MasterProfile = profile
	}

	related, err := s.repo.ListByMasterProfile(ctx, s.db, masterID)
	if err != nil {
		return domain.ProfileInfoResponse{}, err
	}
	for _, other := range related {
		if other.ID == user.ID {
			continue
		}
		resp.RelatedUsers = append(resp.RelatedUsers, other)
	}
	return resp, nil
}
