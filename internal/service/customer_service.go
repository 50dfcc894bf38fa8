package service

import (
	"context"
	"time"

	"customer-groups-api/internal/domain"
)

type CustomerService struct {
	customers domain.CustomerRepository
	groups    domain.GroupRepository
}

func NewCustomerService(customers domain.CustomerRepository, groups domain.GroupRepository) *CustomerService {
	return &CustomerService{customers: customers, groups: groups}
}

func (s *CustomerService) requireGroup(ctx context.Context, groupID uint) error {
	g, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return err
	}
	if g == nil {
		return domain.ErrGroupNotFound
	}
	return nil
}

func (s *CustomerService) CreateOne(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if err := s.requireGroup(ctx, c.GroupID); err != nil {
		return nil, err
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateBatch 要么全部入库要么一条不动：列表自身的约束先查
// （条数、同组、组内邮箱不重复），再在一个事务里落库
func (s *CustomerService) CreateBatch(ctx context.Context, cs []domain.Customer) ([]domain.Customer, error) {
	if len(cs) < 2 {
		return nil, &ValidationError{Msg: "Invalid list. Provide at least two customers."}
	}
	groupID := cs[0].GroupID
	seen := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		if c.GroupID != groupID {
			return nil, &ValidationError{Msg: "Invalid list. All customers must share the same group_id."}
		}
		if _, dup := seen[c.Email]; dup {
			return nil, domain.ErrDuplicateCustomer
		}
		seen[c.Email] = struct{}{}
	}
	if err := s.requireGroup(ctx, groupID); err != nil {
		return nil, err
	}
	if err := s.customers.CreateBatch(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*domain.Customer, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

// GetWithAge 详情带派生的 age 字段
func (s *CustomerService) GetWithAge(ctx context.Context, id uint, now time.Time) (*domain.CustomerWithAge, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := c.WithAge(now)
	return &out, nil
}

func (s *CustomerService) Update(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	return s.customers.Update(ctx, c)
}

func (s *CustomerService) ListByGroup(ctx context.Context, groupID uint, sortColumn string, descending bool) ([]domain.Customer, error) {
	if err := s.requireGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.customers.ListByGroup(ctx, groupID, sortColumn, descending)
}

func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.customers.Delete(ctx, id)
}
