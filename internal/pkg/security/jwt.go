package security

import (
	"PrintDungeon/internal/api/config"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMalformed = errors.New("token 格式不正确")
	ErrTokenInvalid   = errors.New("token 无效或已过期")
)

// Signer 使用 HS256 签发与校验 Token
type Signer struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

func NewSigner(cfg config.JWTConfig) *Signer {
	return &Signer{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		expiration: cfg.Expiration,
		now:        time.Now,
	}
}

var defaultSigner *Signer

// Init 安装全局 Signer，供中间件使用
func Init(cfg config.JWTConfig) {
	defaultSigner = NewSigner(cfg)
}

func Default() *Signer {
	return defaultSigner
}

// GenerateToken 生成一个新的 JWT Token
func (s *Signer) GenerateToken(userID string, roles []string) (string, error) {
	if userID == "" {
		return "", errors.New("user id 不能为空")
	}
	now := s.now()
	claims := &UserClaims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("签名 Token 失败: %w", err)
	}
	return tokenString, nil
}

// ValidateToken 验证 Token 字符串并解析出 Claims
func (s *Signer) ValidateToken(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名方法: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ExtractSignature 从 Token 字符串中提取签名，用于吊销检查
func ExtractSignature(tokenString string) (string, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 || parts[2] == "" {
		return "", ErrTokenMalformed
	}
	return parts[2], nil
}
