package memory

import (
	"context"

	"customer-groups-api/internal/domain"
)

// Store 本身就是 domain.UserRepository；分组/客户通过视图适配，
// 三个接口共享同一份数据，级联删除才看得见。

func (s *Store) Users() domain.UserRepository         { return s }
func (s *Store) Groups() domain.GroupRepository       { return groupsView{s} }
func (s *Store) Customers() domain.CustomerRepository { return customersView{s} }

type groupsView struct{ s *Store }

func (v groupsView) Create(ctx context.Context, g *domain.Group) error {
	return v.s.CreateGroup(ctx, g)
}
func (v groupsView) FindByID(ctx context.Context, id uint) (*domain.Group, error) {
	return v.s.FindGroupByID(ctx, id)
}
func (v groupsView) Update(ctx context.Context, id uint, name, description string) (*domain.Group, error) {
	return v.s.UpdateGroup(ctx, id, name, description)
}
func (v groupsView) ListByAdmin(ctx context.Context, adminID uint, sortColumn string, descending bool) ([]domain.Group, error) {
	return v.s.ListByAdmin(ctx, adminID, sortColumn, descending)
}
func (v groupsView) Delete(ctx context.Context, id uint) error {
	return v.s.DeleteGroup(ctx, id)
}

type customersView struct{ s *Store }

func (v customersView) Create(ctx context.Context, c *domain.Customer) error {
	return v.s.CreateCustomer(ctx, c)
}
func (v customersView) CreateBatch(ctx context.Context, cs []domain.Customer) error {
	return v.s.CreateCustomerBatch(ctx, cs)
}
func (v customersView) FindByID(ctx context.Context, id uint) (*domain.Customer, error) {
	return v.s.FindCustomerByID(ctx, id)
}
func (v customersView) Update(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	return v.s.UpdateCustomer(ctx, c)
}
func (v customersView) ListByGroup(ctx context.Context, groupID uint, sortColumn string, descending bool) ([]domain.Customer, error) {
	return v.s.ListByGroup(ctx, groupID, sortColumn, descending)
}
func (v customersView) Delete(ctx context.Context, id uint) error {
	return v.s.DeleteCustomer(ctx, id)
}
