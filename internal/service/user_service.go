package service

import (
	"context"

	"customer-groups-api/internal/core/auth"
	"customer-groups-api/internal/domain"
	"customer-groups-api/internal/validate"
	"customer-groups-api/pkg/utils"
)

type UserService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewUserService(users domain.UserRepository, jwter *auth.JWTer) *UserService {
	return &UserService{users: users, jwter: jwter}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Amount(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// Signup 密码入库前先 bcrypt；邮箱冲突由仓储返回 ErrEmailTaken
func (s *UserService) Signup(ctx context.Context, firstName, lastName, email, password string) (*domain.User, error) {
	u := &domain.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  utils.HashPassword(password),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login 成功签发 token；用户不存在和密码不对统一返回 ErrInvalidCredentials
func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.Password) {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwter.Issue(u.ID, u.Email)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// UpdateField 只接受封闭集合里的字段，值按对应规则重新校验；密码重新散列
func (s *UserService) UpdateField(ctx context.Context, id uint, fieldName string, value *string) (*domain.User, error) {
	field, ok := domain.ParseUserField(fieldName)
	if !ok {
		return nil, ErrUnknownField
	}
	if msg := validate.ErrorString([]validate.Field{{Kind: fieldName, Value: value}}); msg != "" {
		return nil, &ValidationError{Msg: msg}
	}
	v := *value
	if field == domain.UserFieldPassword {
		v = utils.HashPassword(v)
	}
	return s.users.UpdateField(ctx, id, field, v)
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.users.Delete(ctx, id)
}
