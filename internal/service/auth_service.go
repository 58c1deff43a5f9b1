package service

import (
	"errors"
	"fmt"

	"github.com/quizmind/quizmind-api/internal/apperror"
	"github.com/quizmind/quizmind-api/internal/dto"
	"github.com/quizmind/quizmind-api/internal/model"
	"github.com/quizmind/quizmind-api/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req dto.RegisterDTO) (*dto.AuthResponseDTO, error)
	Login(req dto.LoginDTO) (*dto.AuthResponseDTO, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokenSvc TokenService
}

func NewAuthService(userRepo repository.UserRepository, tokenSvc TokenService) AuthService {
	return &authService{userRepo: userRepo, tokenSvc: tokenSvc}
}

func (s *authService) Register(req dto.RegisterDTO) (*dto.AuthResponseDTO, error) {
	if existing, err := s.userRepo.FindByEmail(req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email is already registered", apperror.ErrValidation)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Self-registration always yields the user role; elevation is a
	// separate admin operation.
	user, err := model.NewUser(req.Name, req.Email, string(hashed), string(model.RoleUser))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}
	user.Age = req.Age
	user.Gender = req.Gender
	// Current behavior: accounts are verified immediately at registration.
	user.EmailVerified = true

	if err := s.userRepo.Create(user); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("Register: failed to create user")
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}

	return s.respondWithToken(user)
}

func (s *authService) Login(req dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthenticated)
	}

	return s.respondWithToken(user)
}

func (s *authService) respondWithToken(user *model.User) (*dto.AuthResponseDTO, error) {
	token, err := s.tokenSvc.Issue(user.ID, user.Role)
	if err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Failed to issue token")
		return nil, err
	}
	return &dto.AuthResponseDTO{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           string(user.Role),
		SelectedAvatar: user.SelectedAvatar,
		EmailVerified:  user.EmailVerified,
		Token:          token,
	}, nil
}
