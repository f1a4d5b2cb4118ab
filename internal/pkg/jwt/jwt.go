package jwt

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess = "access"
	TokenTypeStream = "sse"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrMissingEmployee = errors.New("token carries no employee")
)

// Service verifies access tokens issued by the auth service and issues the
// short-lived tokens used by EventSource connections, which cannot send an
// Authorization header.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateSSEToken(employeeID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (employeeID string, err error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
	sseTTL    time.Duration
	now       func() time.Time
}

func NewJWTService(secretKey string, sseTTL time.Duration) *JWTService {
	if sseTTL <= 0 {
		sseTTL = 5 * time.Minute
	}
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		sseTTL:    sseTTL,
		now:       time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(employeeID string) (token string, expiresIn int, err error) {
	if employeeID == "" {
		return "", 0, ErrMissingEmployee
	}
	expiresAt := j.now().Add(j.sseTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"type":        TokenTypeStream,
		"exp":         expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(j.sseTTL.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns the employee ID
func (j *JWTService) ValidateSSEToken(tokenString string) (employeeID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeStream {
		return "", jwt.ErrInvalidJWT()
	}

	return EmployeeID(token.PrivateClaims())
}

// EmployeeID extracts the employee_id claim.
func EmployeeID(claims map[string]interface{}) (string, error) {
	v, ok := claims["employee_id"]
	if !ok || v == nil {
		return "", ErrMissingEmployee
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", ErrMissingEmployee
	}
	return id, nil
}

var _ Service = (*JWTService)(nil)
