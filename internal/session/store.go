package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/igenda-app/igenda-api/internal/httperr"
	"github.com/igenda-app/igenda-api/internal/models"
)

const (
	adminSessionTTL  = 24 * time.Hour
	clientSessionTTL = 30 * 24 * time.Hour

	clientKeyPrefix  = "session:client:"
	revokedKeyPrefix = "session:revoked:"
)

// Store resolve tokens opacos/JWT para um Principal.
// Sessões expiradas e inexistentes produzem o mesmo erro (unauthorized),
// para não vazar a existência de uma sessão.
type Store struct {
	rdb    *redis.Client
	secret []byte
}

func NewStore(rdb *redis.Client, jwtSecret string) *Store {
	return &Store{
		rdb:    rdb,
		secret: []byte(jwtSecret),
	}
}

func errUnauthorized() error {
	return httperr.ErrBusiness(httperr.CodeUnauthorized)
}

// --------------------------------------------------
// Admin (JWT + deny-list de revogação)
// --------------------------------------------------

func (s *Store) IssueAdmin(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":          user.ID,
		"enterpriseId": user.EnterpriseID,
		"role":         user.Role,
		"jti":          uuid.New().String(),
		"exp":          now.Add(adminSessionTTL).Unix(),
		"iat":          now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// RevokeAdmin coloca o jti do token na deny-list até a expiração natural.
func (s *Store) RevokeAdmin(ctx context.Context, tokenString string) error {
	claims, err := s.parseAdmin(tokenString)
	if err != nil {
		return err
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return errUnauthorized()
	}

	ttl := adminSessionTTL
	if exp, ok := claims["exp"].(float64); ok {
		if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
			ttl = remaining
		}
	}

	return s.rdb.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

func (s *Store) parseAdmin(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errUnauthorized()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errUnauthorized()
	}

	return claims, nil
}

func (s *Store) resolveAdmin(ctx context.Context, tokenString string) (Principal, error) {
	claims, err := s.parseAdmin(tokenString)
	if err != nil {
		return Principal{}, err
	}

	if jti, _ := claims["jti"].(string); jti != "" {
		exists, err := s.rdb.Exists(ctx, revokedKeyPrefix+jti).Result()
		if err != nil {
			return Principal{}, err
		}
		if exists > 0 {
			return Principal{}, errUnauthorized()
		}
	}

	userID, ok1 := claims["sub"].(float64)
	enterpriseID, ok2 := claims["enterpriseId"].(float64)
	role, _ := claims["role"].(string)
	if !ok1 || !ok2 {
		return Principal{}, errUnauthorized()
	}

	return Principal{
		Kind:         KindAdmin,
		UserID:       uint(userID),
		EnterpriseID: uint(enterpriseID),
		Role:         role,
	}, nil
}

// --------------------------------------------------
// Client (token opaco no Redis, TTL nativo)
// --------------------------------------------------

type clientSession struct {
	ClientID     uint `json:"client_id"`
	EnterpriseID uint `json:"enterprise_id"`
}

func (s *Store) IssueClient(ctx context.Context, client *models.Client) (string, error) {
	token := uuid.New().String()

	payload, err := json.Marshal(clientSession{
		ClientID:     client.ID,
		EnterpriseID: client.EnterpriseID,
	})
	if err != nil {
		return "", err
	}

	if err := s.rdb.Set(ctx, clientKeyPrefix+token, payload, clientSessionTTL).Err(); err != nil {
		return "", err
	}

	return token, nil
}

func (s *Store) RevokeClient(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, clientKeyPrefix+token).Err()
}

func (s *Store) resolveClient(ctx context.Context, token string) (Principal, error) {
	raw, err := s.rdb.Get(ctx, clientKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return Principal{}, errUnauthorized()
	}
	if err != nil {
		return Principal{}, err
	}

	var cs clientSession
	if err := json.Unmarshal(raw, &cs); err != nil {
		return Principal{}, errUnauthorized()
	}

	return Principal{
		Kind:         KindClient,
		ClientID:     cs.ClientID,
		EnterpriseID: cs.EnterpriseID,
	}, nil
}

// --------------------------------------------------
// Ponto único de resolução
// --------------------------------------------------

func (s *Store) Resolve(ctx context.Context, kind Kind, token string) (Principal, error) {
	if token == "" {
		return Principal{}, errUnauthorized()
	}

	switch kind {
	case KindAdmin:
		return s.resolveAdmin(ctx, token)
	case KindClient:
		return s.resolveClient(ctx, token)
	default:
		return Principal{}, errUnauthorized()
	}
}
