package doctors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/medconnect/hospital-booking/pkg/logging"
)

// Claims is the JWT payload issued to a logged-in doctor. Subject carries
// the doctor id; the token identifies a doctor and nothing more.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Authenticator verifies doctor credentials and issues bearer tokens.
type Authenticator struct {
	repo   Repository
	secret []byte
	expiry time.Duration
	logger *logging.Logger
	now    func() time.Time
}

// NewAuthenticator constructs an Authenticator. Expiry defaults to 24h.
func NewAuthenticator(repo Repository, secret string, expiry time.Duration, logger *logging.Logger) *Authenticator {
	if repo == nil {
		panic("doctors: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &Authenticator{
		repo:   repo,
		secret: []byte(secret),
		expiry: expiry,
		logger: logger,
		now:    time.Now,
	}
}

// Authenticate checks email+password and returns the doctor with a signed
// token. Unknown email and wrong password both return ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*Doctor, string, error) {
	doctor, err := a.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			a.logger.Info("login failed: unknown email", "email", email)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("doctors: lookup for login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.PasswordHash), []byte(password)); err != nil {
		a.logger.Info("login failed: password mismatch", "doctor_id", doctor.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.issueToken(doctor)
	if err != nil {
		return nil, "", fmt.Errorf("doctors: sign token: %w", err)
	}

	a.logger.Info("doctor logged in", "doctor_id", doctor.ID)
	return doctor, token, nil
}

func (a *Authenticator) issueToken(doctor *Doctor) (string, error) {
	now := a.now().UTC()
	claims := Claims{
		Name:  doctor.Name,
		Email: doctor.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   doctor.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// HashPassword produces a bcrypt hash for seeding and account tooling.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("doctors: hash password: %w", err)
	}
	return string(hash), nil
}
