package authsvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"libraryservice/model"
	"libraryservice/util/database"
	"libraryservice/util/hash"
	jwtutil "libraryservice/util/jwt"
)

type ErrCode string

const (
	ErrEmailTaken   ErrCode = "EMAIL_TAKEN"
	ErrBadInput     ErrCode = "BAD_INPUT"
	ErrInvalidCreds ErrCode = "INVALID_CREDENTIALS"
	ErrNotFound     ErrCode = "NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Config struct {
	Secret string
	TTL    time.Duration
	// StaffEmail is registered with is_staff set. Empty disables it.
	StaffEmail string
}

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	Me(ctx context.Context, userID int64) (*model.User, error)
}

type service struct {
	ur  Repo
	cfg Config
}

func New(ur Repo, cfg Config) Service {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	cfg.StaffEmail = strings.ToLower(strings.TrimSpace(cfg.StaffEmail))
	return &service{ur: ur, cfg: cfg}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 6 {
		return nil, "", makeErr(ErrBadInput)
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: hashed,
		IsStaff:      s.cfg.StaffEmail != "" && email == s.cfg.StaffEmail,
	}
	if err := s.ur.Create(ctx, u); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, "", makeErr(ErrEmailTaken)
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.cfg.Secret, u.ID, u.IsStaff, s.cfg.TTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, "", makeErr(ErrBadInput)
	}
	u, err := s.ur.ByEmail(ctx, email)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, "", makeErr(ErrInvalidCreds)
		}
		return nil, "", err
	}
	if u == nil || !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", makeErr(ErrInvalidCreds)
	}
	token, err := jwtutil.Issue(s.cfg.Secret, u.ID, u.IsStaff, s.cfg.TTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Me(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}
