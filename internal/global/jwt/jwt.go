package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"innovation-hub/config"
)

const issuer = "innovation-hub"

var (
	ErrTokenInvalid = errors.New("jwt: token invalid")
	ErrTokenExpired = errors.New("jwt: token expired")
)

// Payload 令牌中携带的身份信息
type Payload struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type Claims struct {
	Payload
	jwt.StandardClaims
}

// SessionID 每个令牌唯一，用于会话登记与注销
func (c *Claims) SessionID() string {
	return c.Id
}

func (c *Claims) Expiry() time.Time {
	return time.Unix(c.StandardClaims.ExpiresAt, 0)
}

type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(cfg config.JWT) *Signer {
	ttl := time.Duration(cfg.AccessExpire) * time.Second
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Signer{secret: []byte(cfg.AccessSecret), ttl: ttl, now: time.Now}
}

// CreateToken 签发 HS256 令牌
func (s *Signer) CreateToken(p Payload) (string, *Claims, error) {
	now := s.now()
	claims := &Claims{
		Payload: p,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   p.UserID,
			Issuer:    issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// ParseToken 校验签名与过期时间，过期单独返回 ErrTokenExpired
func (s *Signer) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid || claims.Issuer != issuer {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
