package service

import (
	"context"
	"errors"
	"fmt"

	"ai-diary/internal/model"

	gomysql "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrAccountDeleted = errors.New("account has been deleted")
)

type AuthService struct{ db *gorm.DB }

func NewAuthService(db *gorm.DB) *AuthService { return &AuthService{db: db} }

func (s *AuthService) Signup(ctx context.Context, email, password string) (*model.Account, error) {
	var existing model.Account
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("query account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	a := model.Account{Email: email, PasswordHash: string(hash)}
	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		// A concurrent signup can slip past the lookup above and hit the
		// unique email index instead.
		if isDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return &a, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *gomysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Account, error) {
	var a model.Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}

	// A soft-deleted account may still have a valid password row.
	var p model.UserProfile
	err := s.db.WithContext(ctx).Where("account_id = ?", a.ID).First(&p).Error
	if err == nil && p.IsDeleted {
		return nil, ErrAccountDeleted
	}
	return &a, nil
}

// VerifyPassword re-authenticates an already-logged-in account, required
// before destructive operations.
func (s *AuthService) VerifyPassword(ctx context.Context, accountID int, password string) error {
	var a model.Account
	if err := s.db.WithContext(ctx).First(&a, accountID).Error; err != nil {
		return ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return ErrBadCredentials
	}
	return nil
}
