// Package memory 内存版仓储，实现 domain 的三个 Repository 接口。
// 服务层与路由层测试用它替代数据库。
package memory

import (
	"context"
	"sort"
	"sync"

	"customer-groups-api/internal/domain"
)

type Store struct {
	mu sync.Mutex

	users     map[uint]domain.User
	groups    map[uint]domain.Group
	customers map[uint]domain.Customer

	nextUserID     uint
	nextGroupID    uint
	nextCustomerID uint

	// QueryCalls 统计列表/查询类访问，测试用来断言“校验失败时没碰存储”
	QueryCalls int
}

func NewStore() *Store {
	return &Store{
		users:     map[uint]domain.User{},
		groups:    map[uint]domain.Group{},
		customers: map[uint]domain.Customer{},
	}
}

// ---------- UserRepository ----------

func (s *Store) Create(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	s.nextUserID++
	u.ID = s.nextUserID
	s.users[u.ID] = *u
	return nil
}

func (s *Store) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		out := u
		return &out, nil
	}
	return nil, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) List(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.QueryCalls++
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.QueryCalls++
	return int64(len(s.users)), nil
}

func (s *Store) UpdateField(ctx context.Context, id uint, field domain.UserField, value string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if field == domain.UserFieldEmail {
		for _, other := range s.users {
			if other.ID != id && other.Email == value {
				return nil, domain.ErrEmailTaken
			}
		}
	}
	field.Apply(&u, value)
	s.users[id] = u
	out := u
	return &out, nil
}

func (s *Store) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	// 级联：先删用户的分组，再删分组下的客户
	for gid, g := range s.groups {
		if g.AdminID == id {
			delete(s.groups, gid)
			for cid, c := range s.customers {
				if c.GroupID == gid {
					delete(s.customers, cid)
				}
			}
		}
	}
	return nil
}

// ---------- GroupRepository ----------

func (s *Store) CreateGroup(ctx context.Context, g *domain.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.groups {
		if existing.AdminID == g.AdminID && existing.Name == g.Name && existing.Description == g.Description {
			return domain.ErrDuplicateGroup
		}
	}
	s.nextGroupID++
	g.ID = s.nextGroupID
	s.groups[g.ID] = *g
	return nil
}

func (s *Store) FindGroupByID(ctx context.Context, id uint) (*domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.groups[id]; ok {
		out := g
		return &out, nil
	}
	return nil, nil
}

func (s *Store) UpdateGroup(ctx context.Context, id uint, name, description string) (*domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	g.Name = name
	g.Description = description
	s.groups[id] = g
	out := g
	return &out, nil
}

func (s *Store) ListByAdmin(ctx context.Context, adminID uint, sortColumn string, descending bool) ([]domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.QueryCalls++
	var out []domain.Group
	for _, g := range s.groups {
		if g.AdminID == adminID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var less bool
		switch sortColumn {
		case "name":
			less = a.Name < b.Name
		case "description":
			less = a.Description < b.Description
		case "created_at":
			if !a.CreatedOn.Equal(b.CreatedOn.Time) {
				less = a.CreatedOn.Before(b.CreatedOn.Time)
			} else {
				less = a.CreatedTime.Before(b.CreatedTime.Time)
			}
		default:
			less = a.ID < b.ID
		}
		if descending {
			return !less && !groupEqual(a, b, sortColumn)
		}
		return less
	})
	return out, nil
}

func groupEqual(a, b domain.Group, sortColumn string) bool {
	switch sortColumn {
	case "name":
		return a.Name == b.Name
	case "description":
		return a.Description == b.Description
	case "created_at":
		return a.CreatedOn.Equal(b.CreatedOn.Time) && a.CreatedTime.Equal(b.CreatedTime.Time)
	}
	return a.ID == b.ID
}

func (s *Store) DeleteGroup(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[id]; !ok {
		return domain.ErrGroupNotFound
	}
	delete(s.groups, id)
	for cid, c := range s.customers {
		if c.GroupID == id {
			delete(s.customers, cid)
		}
	}
	return nil
}

// ---------- CustomerRepository ----------

func (s *Store) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.customerExists(c.Email, c.GroupID, 0) {
		return domain.ErrDuplicateCustomer
	}
	s.nextCustomerID++
	c.ID = s.nextCustomerID
	s.customers[c.ID] = *c
	return nil
}

func (s *Store) CreateCustomerBatch(ctx context.Context, cs []domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range cs {
		if s.customerExists(cs[i].Email, cs[i].GroupID, 0) {
			return domain.ErrDuplicateCustomer
		}
	}
	for i := range cs {
		s.nextCustomerID++
		cs[i].ID = s.nextCustomerID
		s.customers[cs[i].ID] = cs[i]
	}
	return nil
}

func (s *Store) FindCustomerByID(ctx context.Context, id uint) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.customers[id]; ok {
		out := c
		return &out, nil
	}
	return nil, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, in *domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[in.ID]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	if s.customerExists(in.Email, c.GroupID, c.ID) {
		return nil, domain.ErrDuplicateCustomer
	}
	c.FirstName = in.FirstName
	c.LastName = in.LastName
	c.Email = in.Email
	c.Country = in.Country
	c.City = in.City
	c.Birthday = in.Birthday
	s.customers[c.ID] = c
	out := c
	return &out, nil
}

func (s *Store) ListByGroup(ctx context.Context, groupID uint, sortColumn string, descending bool) ([]domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.QueryCalls++
	var out []domain.Customer
	for _, c := range s.customers {
		if c.GroupID == groupID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		less := customerLess(out[i], out[j], sortColumn)
		if descending {
			return customerLess(out[j], out[i], sortColumn)
		}
		return less
	})
	return out, nil
}

func customerLess(a, b domain.Customer, sortColumn string) bool {
	switch sortColumn {
	case "first_name":
		return a.FirstName < b.FirstName
	case "last_name":
		return a.LastName < b.LastName
	case "email":
		return a.Email < b.Email
	case "country":
		return strOrEmpty(a.Country) < strOrEmpty(b.Country)
	case "city":
		return strOrEmpty(a.City) < strOrEmpty(b.City)
	case "birthday":
		return dateOrZero(a.Birthday).Before(dateOrZero(b.Birthday).Time)
	}
	return a.ID < b.ID
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateOrZero(d *domain.Date) domain.Date {
	if d == nil {
		return domain.Date{}
	}
	return *d
}

func (s *Store) DeleteCustomer(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(s.customers, id)
	return nil
}

func (s *Store) customerExists(email string, groupID, excludeID uint) bool {
	for _, c := range s.customers {
		if c.ID != excludeID && c.Email == email && c.GroupID == groupID {
			return true
		}
	}
	return false
}
