package jwt

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// Operator is the identity recorded as signer/author on writes.
type Operator struct {
	UserID     string
	Name       string
	Role       Role
	CompanyIDs []string
}

// CanAccess reports whether the operator may act on companyID. Admins reach
// every company.
func (o Operator) CanAccess(companyID string) bool {
	if o.Role == RoleAdmin {
		return true
	}
	for _, id := range o.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

type Service interface {
	GenerateAccessToken(op Operator) (token string, expiresAt int64, err error)
	GenerateSSEToken(op Operator) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (Operator, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(op Operator) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := operatorClaims(op)
	claims["type"] = "access"
	claims["exp"] = expiresAt

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// GenerateSSEToken issues a short-lived token for EventSource connections,
// which cannot send an Authorization header.
func (j *JWTService) GenerateSSEToken(op Operator) (token string, expiresIn int, err error) {
	expiresIn = 300
	claims := operatorClaims(op)
	claims["type"] = "sse"
	claims["exp"] = time.Now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}
	return tokenString, expiresIn, nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (Operator, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return Operator{}, err
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return Operator{}, err
	}
	if tokenType, _ := claims["type"].(string); tokenType != "sse" {
		return Operator{}, jwt.ErrInvalidJWT()
	}

	op := OperatorFromClaims(claims)
	if op.UserID == "" {
		return Operator{}, jwt.ErrInvalidJWT()
	}
	return op, nil
}

func operatorClaims(op Operator) map[string]interface{} {
	companies := op.CompanyIDs
	if companies == nil {
		companies = []string{}
	}
	return map[string]interface{}{
		"user_id":     op.UserID,
		"name":        op.Name,
		"role":        string(op.Role),
		"company_ids": companies,
	}
}

// OperatorFromClaims reads the operator fields from decoded claims. Missing
// claims produce zero values.
func OperatorFromClaims(claims map[string]interface{}) Operator {
	op := Operator{}
	op.UserID, _ = claims["user_id"].(string)
	op.Name, _ = claims["name"].(string)
	if role, ok := claims["role"].(string); ok {
		op.Role = Role(role)
	}
	switch ids := claims["company_ids"].(type) {
	case []interface{}:
		for _, id := range ids {
			if s, ok := id.(string); ok {
				op.CompanyIDs = append(op.CompanyIDs, s)
			}
		}
	case []string:
		op.CompanyIDs = ids
	}
	return op
}

type operatorKey struct{}

// WithOperator stores op in ctx for services that record authorship.
func WithOperator(ctx context.Context, op Operator) context.Context {
	return context.WithValue(ctx, operatorKey{}, op)
}

// OperatorFromContext returns the request operator: the one set with
// WithOperator, else the verified jwtauth token claims, else the zero value.
func OperatorFromContext(ctx context.Context) Operator {
	if op, ok := ctx.Value(operatorKey{}).(Operator); ok {
		return op
	}
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil || claims == nil {
		return Operator{}
	}
	return OperatorFromClaims(claims)
}

// Signer is the display name recorded on signed entries.
func (o Operator) Signer() string {
	if o.Name != "" {
		return o.Name
	}
	return o.UserID
}
