package service

import (
	"context"
	"fmt"
	"time"

	"customer-groups-api/internal/core/cache"
	"customer-groups-api/internal/domain"
)

const groupCacheTTL = 5 * time.Minute

type GroupService struct {
	groups domain.GroupRepository
	users  domain.UserRepository
	cache  *cache.Cache // 可为 nil（未配置 redis 时直查库）
}

func NewGroupService(groups domain.GroupRepository, users domain.UserRepository, c *cache.Cache) *GroupService {
	return &GroupService{groups: groups, users: users, cache: c}
}

func groupCacheKey(id uint) string { return fmt.Sprintf("group:%d", id) }

// Create 管理员必须存在；创建日期与时刻由服务端打点
func (s *GroupService) Create(ctx context.Context, adminID uint, name, description string) (*domain.Group, error) {
	admin, err := s.users.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrUserNotFound
	}
	now := time.Now()
	g := &domain.Group{
		AdminID:     adminID,
		Name:        name,
		Description: description,
		CreatedOn:   domain.DateOf(now),
		CreatedTime: domain.TimeOfDayOf(now),
	}
	if err := s.groups.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GroupService) Get(ctx context.Context, id uint) (*domain.Group, error) {
	load := func(ctx context.Context) (*domain.Group, error) {
		return s.groups.FindByID(ctx, id)
	}
	var g *domain.Group
	var err error
	if s.cache != nil {
		g, err = cache.GetOrLoadJSON(s.cache, ctx, groupCacheKey(id), groupCacheTTL, load)
	} else {
		g, err = load(ctx)
	}
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrGroupNotFound
	}
	return g, nil
}

func (s *GroupService) Update(ctx context.Context, id uint, name, description string) (*domain.Group, error) {
	g, err := s.groups.Update(ctx, id, name, description)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, groupCacheKey(id))
	}
	return g, nil
}

func (s *GroupService) ListByUser(ctx context.Context, userID uint, sortColumn string, descending bool) ([]domain.Group, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.groups.ListByAdmin(ctx, userID, sortColumn, descending)
}

func (s *GroupService) Delete(ctx context.Context, id uint) error {
	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, groupCacheKey(id))
	}
	return nil
}
