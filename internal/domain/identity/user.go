package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/beamworkflow/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// MaxUsernameLength is the longest username the schema stores.
// Longer values are truncated, not rejected.
const MaxUsernameLength = 20

// DefaultTheme is assigned to every new account.
const DefaultTheme = "lumen"

// Default profile images assigned when no upload accompanies signup.
const (
	DefaultImageMale   = "img_male.png"
	DefaultImageFemale = "img_female.png"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a registered account. The email address is the
// primary key; there is no separate generated identifier and no
// rename operation.
type User struct {
	Email        string
	PasswordHash string
	Username     string
	Gender       string
	UserImage    string
	ThemeName    string
	CreatedAt    time.Time
}

// NewUser creates a user with a hashed password and the default theme.
func NewUser(email, username, password, gender string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if gender != "" && len(gender) > 7 {
		return nil, shared.NewDomainError("INVALID_GENDER", "Gender cannot exceed 7 characters")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		Email:        email,
		PasswordHash: hash,
		Username:     truncateUsername(username),
		Gender:       gender,
		ThemeName:    DefaultTheme,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the stored hash with a hash of the new password.
func (u *User) SetPassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	return nil
}

// SetUsername sets the username, truncating values over the limit.
func (u *User) SetUsername(username string) {
	u.Username = truncateUsername(username)
}

// SetGender sets the gender attribute.
func (u *User) SetGender(gender string) {
	u.Gender = gender
}

// SetTheme sets the UI theme preference.
func (u *User) SetTheme(theme string) {
	u.ThemeName = theme
}

// SetImage records the stored profile image file name.
func (u *User) SetImage(fileName string) {
	u.UserImage = fileName
}

// DefaultImage returns the stock profile image for a gender.
func DefaultImage(gender string) string {
	if strings.EqualFold(gender, "male") {
		return DefaultImageMale
	}
	return DefaultImageFemale
}

// IsDefaultImage reports whether fileName is one of the stock images,
// which are shared between accounts and must never be deleted.
func IsDefaultImage(fileName string) bool {
	return fileName == DefaultImageMale || fileName == DefaultImageFemale
}

func truncateUsername(username string) string {
	if len(username) > MaxUsernameLength {
		return username[:MaxUsernameLength]
	}
	return username
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
