package usecase

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// JWT発行の約束（実装はmain側）
type TokenIssuer interface {
	Issue(subject string, now time.Time) (token string, expiresAt time.Time, err error)
}

// ハッシュと平文の照合
type PasswordVerifier interface {
	Verify(hash string, plain string) error
}

type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(hash string, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

type LoginInput struct {
	Password string
}

type LoginOutput struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// LoginUsecaseはオペレータのログイン。
// configのbcryptハッシュと照合して、短命のアクセストークンを返す。
type LoginUsecase struct {
	adminPasswordHash string
	verifier          PasswordVerifier
	issuer            TokenIssuer
	clock             Clock
}

// DI
func NewLoginUsecase(
	adminPasswordHash string,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		adminPasswordHash: adminPasswordHash,
		verifier:          verifier,
		issuer:            issuer,
		clock:             clock,
	}
}

func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	if in.Password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, CodeGeneral, "unauthorized")
	}

	if err := u.verifier.Verify(u.adminPasswordHash, in.Password); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, CodeGeneral, "unauthorized")
	}

	token, expiresAt, err := u.issuer.Issue("operator", u.clock.Now())
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, CodeGeneral, "internal error")
	}

	return LoginOutput{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
