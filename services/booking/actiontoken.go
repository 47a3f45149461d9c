package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Happyesss/careerlive---alpha/utils"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// Mentor actions carried by emailed links.
const (
	ActionConfirm = "confirm"
	ActionDecline = "decline"
)

// ActionTokenTTL bounds how long an emailed action link stays valid.
const ActionTokenTTL = 7 * 24 * time.Hour

// usedTokenPrefix namespaces redeemed-token markers in Redis.
const usedTokenPrefix = "actiontoken:"

// ActionTokenManager issues and redeems the signed single-use tokens behind
// emailed confirm and decline links. A token is scoped to one booking and one
// action; redemption burns it through a Redis SETNX marker, so a replayed
// link cannot act twice.
type ActionTokenManager struct {
	client *redis.Client
	signer func(bookingID, action string) (string, error)
}

// NewActionTokenManager creates a manager backed by the given Redis client.
func NewActionTokenManager(client *redis.Client) *ActionTokenManager {
	return &ActionTokenManager{
		client: client,
		signer: signActionToken,
	}
}

func signActionToken(bookingID, action string) (string, error) {
	claims := jwt.MapClaims{
		"sub": bookingID,
		"act": action,
		"jti": uuid.NewString(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ActionTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(utils.SecretKey())
}

// Issue creates a signed token authorizing the given action on the booking.
func (m *ActionTokenManager) Issue(bookingID, action string) (string, error) {
	signed, err := m.signer(bookingID, action)
	if err != nil {
		return "", fmt.Errorf("failed to sign action token: %w", err)
	}
	return signed, nil
}

// Redeem validates the token for the expected action and burns it. It returns
// the booking ID the token is scoped to.
func (m *ActionTokenManager) Redeem(ctx context.Context, tokenString, action string) (string, error) {
	token, err := utils.ValidateToken(tokenString)
	if err != nil {
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrTokenInvalid
	}
	if act, _ := claims["act"].(string); act != action {
		return "", ErrTokenInvalid
	}
	bookingID, _ := claims["sub"].(string)
	if bookingID == "" {
		return "", ErrTokenInvalid
	}

	marker := usedTokenPrefix + utils.HashToken(tokenString)
	set, err := m.client.SetNX(ctx, marker, "1", ActionTokenTTL).Result()
	if err != nil {
		return "", fmt.Errorf("failed to record token redemption: %w", err)
	}
	if !set {
		return "", ErrTokenUsed
	}
	return bookingID, nil
}
