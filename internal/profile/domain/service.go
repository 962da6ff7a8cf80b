package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateProfileRequest struct {
	ActorID snowflake.ID

	Name            string
	Email           string
	Phone           string
	Profession      string
	Address         string
	City            string
	State           string
	Zipcode         string
	DepositAmount   float64
	LinkedPlanID    string
	MasterProfileID string
	IsMasterProfile bool
}

type UpdateProfileRequest struct {
	ID string

	Name            *string
	Email           *string
	Phone           *string
	Profession      *string
	Address         *string
	City            *string
	State           *string
	Zipcode         *string
	DepositAmount   *float64
	LinkedPlanID    *string
	MasterProfileID *string
	IsMasterProfile *bool
	Active          *bool
}

type GetProfileRequest struct {
	ID string
}

type ListProfileResponse struct {
	Profiles []Profile `json:"profiles"`
}

type Service interface {
	Create(context.Context, CreateProfileRequest) (Profile, error)
	List(context.Context) (ListProfileResponse, error)
	GetByID(context.Context, GetProfileRequest) (Profile, error)
	Update(context.Context, UpdateProfileRequest) (Profile, error)
}

var (
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidMasterProfile = errors.New("invalid_master_profile")
	ErrNotFound             = errors.New("not_found")
)
