package identity

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/beamworkflow/backend/internal/domain/identity"
	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/beamworkflow/backend/internal/infrastructure/auth"
	"github.com/beamworkflow/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileField identifies an updatable account attribute.
type ProfileField string

const (
	FieldPassword  ProfileField = "password"
	FieldUsername  ProfileField = "username"
	FieldUserImage ProfileField = "userImage"
	FieldGender    ProfileField = "gender"
	FieldTheme     ProfileField = "themeName"
)

// ParseProfileField maps a wire value onto the closed field set.
// Unknown values are rejected rather than silently ignored.
func ParseProfileField(value string) (ProfileField, error) {
	switch ProfileField(value) {
	case FieldPassword, FieldUsername, FieldUserImage, FieldGender, FieldTheme:
		return ProfileField(value), nil
	default:
		return "", shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown profile field %q", value))
	}
}

// UserService handles account lifecycle operations
type UserService struct {
	userRepo identity.UserRepository
	images   storage.ImageStore
	tokens   *auth.JWTService
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	images storage.ImageStore,
	tokens *auth.JWTService,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		images:   images,
		tokens:   tokens,
		logger:   logger,
	}
}

// ImageUpload carries an uploaded profile image
type ImageUpload struct {
	FileName string
	Content  io.Reader
}

// SignUpInput contains input for account registration
type SignUpInput struct {
	Email    string
	Username string
	Password string
	Gender   string
	Image    *ImageUpload
}

// ProfileDTO is the account projection returned to clients. It never
// carries the password hash.
type ProfileDTO struct {
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Gender    string    `json:"gender"`
	UserImage string    `json:"userImage"`
	ThemeName string    `json:"themeName"`
	CreatedAt time.Time `json:"createdAt"`
}

// SignInResult is the profile plus a bearer token
type SignInResult struct {
	Profile   ProfileDTO `json:"profile"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// SignUp registers a new account. The email must be unused. When no
// image upload is provided the account gets the gender's stock image.
func (s *UserService) SignUp(ctx context.Context, input SignUpInput) (*ProfileDTO, error) {
	s.logger.Info("Registering account", zap.String("email", strings.ToLower(input.Email)))

	user, err := identity.NewUser(input.Email, input.Username, input.Password, input.Gender)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	if input.Image != nil {
		fileName, err := s.storeImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		user.SetImage(fileName)
	} else {
		user.SetImage(identity.DefaultImage(user.Gender))
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	dto := toProfileDTO(user)
	return &dto, nil
}

// SignIn verifies credentials and returns the profile with a signed
// token. Unknown email and wrong password are indistinguishable.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	user, err := s.verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	issued, err := s.tokens.GenerateToken(user.Email, user.Username)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue token")
	}

	return &SignInResult{
		Profile:   toProfileDTO(user),
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}

// UpdateProfileInput contains input for a single-field profile update
type UpdateProfileInput struct {
	Email    string
	Password string
	Field    string
	Value    string
	Image    *ImageUpload
}

// UpdateProfile changes one account attribute after verifying the
// caller's credentials. An image update replaces the stored file.
func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*ProfileDTO, error) {
	field, err := ParseProfileField(input.Field)
	if err != nil {
		return nil, err
	}

	user, err := s.verify(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	switch field {
	case FieldPassword:
		if err := user.SetPassword(input.Value); err != nil {
			return nil, err
		}
	case FieldUsername:
		user.SetUsername(input.Value)
	case FieldGender:
		user.SetGender(input.Value)
	case FieldTheme:
		user.SetTheme(input.Value)
	case FieldUserImage:
		if input.Image == nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Image file is required")
		}
		fileName, err := s.storeImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		previous := user.UserImage
		user.SetImage(fileName)
		if previous != "" && !identity.IsDefaultImage(previous) {
			if err := s.images.Delete(ctx, previous); err != nil {
				s.logger.Warn("Failed to delete previous image",
					zap.String("file", previous), zap.Error(err))
			}
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update account")
	}

	dto := toProfileDTO(user)
	return &dto, nil
}

// DeleteAccount verifies credentials, removes the account and every
// row that depends on it, then the stored image.
func (s *UserService) DeleteAccount(ctx context.Context, email, password string) error {
	user, err := s.verify(ctx, email, password)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteAccount(ctx, user.Email); err != nil {
		s.logger.Error("Failed to delete account", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete account")
	}

	if user.UserImage != "" && !identity.IsDefaultImage(user.UserImage) {
		if err := s.images.Delete(ctx, user.UserImage); err != nil {
			s.logger.Warn("Failed to delete account image",
				zap.String("file", user.UserImage), zap.Error(err))
		}
	}

	s.logger.Info("Account deleted", zap.String("email", user.Email))
	return nil
}

// FetchImage returns a reader for a stored profile image.
func (s *UserService) FetchImage(ctx context.Context, fileName string) (io.ReadCloser, error) {
	return s.images.Open(ctx, fileName)
}

// verify loads the account and checks the password. Both failure modes
// collapse into ErrInvalidCredentials.
func (s *UserService) verify(ctx context.Context, email, password string) (*identity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if shared.IsDomainError(err, "NOT_FOUND") {
			return nil, shared.ErrInvalidCredentials
		}
		s.logger.Error("Failed to load user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load account")
	}
	if !user.VerifyPassword(password) {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// storeImage writes an upload under a fresh uuid name, keeping the
// upload's extension.
func (s *UserService) storeImage(ctx context.Context, upload *ImageUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(upload.FileName))
	fileName := uuid.New().String() + ext
	if err := s.images.Save(ctx, fileName, upload.Content); err != nil {
		s.logger.Error("Failed to store image", zap.Error(err))
		return "", shared.NewDomainError("INTERNAL_ERROR", "Failed to store image")
	}
	return fileName, nil
}

func toProfileDTO(user *identity.User) ProfileDTO {
	return ProfileDTO{
		Email:     user.Email,
		Username:  user.Username,
		Gender:    user.Gender,
		UserImage: user.UserImage,
		ThemeName: user.ThemeName,
		CreatedAt: user.CreatedAt,
	}
}
