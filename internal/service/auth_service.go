package service

import (
	"context"
	"errors"
	"time"

	"github.com/OshimPathan/ShareSathi/internal/config"
	"github.com/OshimPathan/ShareSathi/internal/models"
	"github.com/OshimPathan/ShareSathi/internal/repo"
	"github.com/OshimPathan/ShareSathi/internal/xe"
	"github.com/OshimPathan/ShareSathi/pkg/nostd"
	"github.com/go-orz/orz"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService handles registration, login and token validation. Registration
// creates the user together with a seeded wallet in one transaction, so no
// account can exist without cash to trade.
type AuthService struct {
	logger *zap.Logger

	*orz.Service

	userRepo   *repo.UserRepo
	walletRepo *repo.WalletRepo

	jwtSecret      string
	jwtExpiration  time.Duration
	initialBalance decimal.Decimal
}

func NewAuthService(db *gorm.DB, conf *config.Config, logger *zap.Logger) *AuthService {
	secret := conf.JWT.Secret
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn("jwt secret not configured, generated a volatile one; sessions will not survive restarts")
	}
	return &AuthService{
		logger:         logger,
		Service:        orz.NewService(db),
		userRepo:       repo.NewUserRepo(db),
		walletRepo:     repo.NewWalletRepo(db),
		jwtSecret:      secret,
		jwtExpiration:  24 * time.Hour,
		initialBalance: decimal.NewFromFloat(conf.Trading.InitialBalanceOrDefault()),
	}
}

// JWTClaims is the token payload.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `json:"nickname" validate:"max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// Register creates a user and their wallet atomically.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	if !nostd.IsEmail(req.Email) {
		return nil, xe.ErrInvalidParams
	}

	_, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, xe.ErrAccountAlreadyUsed
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := nostd.BcryptEncode([]byte(req.Password))
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           ulid.Make().String(),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Nickname:     req.Nickname,
		IsActive:     true,
	}
	wallet := &models.Wallet{
		ID:      ulid.Make().String(),
		UserID:  user.ID,
		Balance: s.initialBalance,
	}

	err = s.Transaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return s.walletRepo.Create(ctx, wallet)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("initial_balance", wallet.Balance.String()))

	return &UserInfo{ID: user.ID, Email: user.Email, Nickname: user.Nickname}, nil
}

// Login checks credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, ip string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login failed: user not found",
				zap.String("email", req.Email),
				zap.String("ip", ip))
			return nil, xe.ErrIncorrectPassword
		}
		return nil, err
	}

	if !user.IsActive {
		s.logger.Warn("login failed: user disabled",
			zap.String("email", req.Email),
			zap.String("ip", ip))
		return nil, xe.ErrUserDisabled
	}

	if err := nostd.BcryptMatch([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login failed: invalid password",
			zap.String("email", req.Email),
			zap.String("ip", ip))
		return nil, xe.ErrIncorrectPassword
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, ip); err != nil {
		s.logger.Error("failed to update last login", zap.Error(err))
	}

	expiresAt := time.Now().Add(s.jwtExpiration)
	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "sharesathi",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID),
		zap.String("ip", ip))

	return &LoginResponse{
		Token:     tokenString,
		ExpiresAt: expiresAt,
		User:      UserInfo{ID: user.ID, Email: user.Email, Nickname: user.Nickname},
	}, nil
}

// ValidateToken parses and verifies a token string.
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, xe.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, xe.ErrInvalidToken
}

// ChangePassword verifies the old password before replacing it.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := nostd.BcryptMatch([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return xe.ErrIncorrectPassword
	}

	passwordHash, err := nostd.BcryptEncode([]byte(newPassword))
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(passwordHash)); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("user_id", userID))
	return nil
}

// GetCurrentUser returns the profile for an authenticated user.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserInfo{ID: user.ID, Email: user.Email, Nickname: user.Nickname}, nil
}
