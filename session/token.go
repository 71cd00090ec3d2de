package session

import (
	"context"
	"errors"
	"time"

	"github.com/devvitrinefrutal-del/vitrine-api/models"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is what the external identity provider asserts about the
// authenticating user. Provider mechanics stay outside this module; only
// this contract crosses the boundary.
type Identity struct {
	ID    string
	Email string
	Name  string
}

// TokenVerifier validates an identity-provider token.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// HMACVerifier verifies provider tokens signed with a shared HMAC secret.
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Verify(_ context.Context, tokenString string) (*Identity, error) {
	claims, err := parseHMAC(tokenString, v.secret)
	if err != nil {
		return nil, err
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" || email == "" {
		return nil, ErrInvalidToken
	}
	name, _ := claims["name"].(string)
	return &Identity{ID: sub, Email: email, Name: name}, nil
}

func parseHMAC(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func issueSessionToken(actor *models.Actor, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   actor.ID,
		"email": actor.Email,
		"name":  actor.Name,
		"role":  string(actor.Role),
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	if actor.LinkedStoreID != "" {
		claims["store_id"] = actor.LinkedStoreID
	}
	if actor.LinkedServiceID != "" {
		claims["service_id"] = actor.LinkedServiceID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func actorFromSessionToken(tokenString string, secret []byte) (*models.Actor, error) {
	claims, err := parseHMAC(tokenString, secret)
	if err != nil {
		return nil, err
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	storeID, _ := claims["store_id"].(string)
	serviceID, _ := claims["service_id"].(string)
	return &models.Actor{
		ID:              sub,
		Email:           email,
		Name:            name,
		Role:            models.Role(role),
		LinkedStoreID:   storeID,
		LinkedServiceID: serviceID,
	}, nil
}
