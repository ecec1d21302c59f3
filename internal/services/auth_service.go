package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"petsupplies/internal/domain"
	"petsupplies/internal/repos"
)

var (
	ErrBadCreds = errors.New("invalid email or password")
	ErrBadToken = errors.New("invalid or expired token")
)

type AuthService struct {
	Users   *repos.UserRepo
	Sellers *repos.SellerRepo
	Secret  []byte
	TTL     time.Duration
}

// Login checks credentials and issues a signed bearer token carrying
// the user id, role, and linked seller id (0 for non-sellers).
func (s *AuthService) Login(email, password string) (string, *domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil || !u.Active {
		return "", nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}

	var sellerID int64
	if u.Role == domain.RoleSeller {
		if seller, err := s.Sellers.ByUserID(u.ID); err == nil {
			sellerID = seller.ID
		} else if !errors.Is(err, sql.ErrNoRows) {
			return "", nil, err
		}
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       u.ID,
		"role":      u.Role,
		"seller_id": sellerID,
		"iat":       now.Unix(),
		"exp":       now.Add(s.TTL).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// ParseToken resolves a bearer token into the request principal.
func (s *AuthService) ParseToken(raw string) (domain.Principal, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !tok.Valid {
		return domain.Principal{}, ErrBadToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Principal{}, ErrBadToken
	}

	sub, okSub := claims["sub"].(float64)
	role, okRole := claims["role"].(string)
	if !okSub || !okRole {
		return domain.Principal{}, ErrBadToken
	}
	p := domain.Principal{UserID: int64(sub), Role: role}
	if sid, ok := claims["seller_id"].(float64); ok {
		p.SellerID = int64(sid)
	}
	return p, nil
}
