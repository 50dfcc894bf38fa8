package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer-groups-api/internal/domain"
	"customer-groups-api/internal/repo/memory"
)

func seedGroup(t *testing.T, store *memory.Store) *domain.Group {
	t.Helper()
	admin := seedAdmin(t, store, "admin@example.com")
	g := &domain.Group{AdminID: admin.ID, Name: "VIP", Description: "desc"}
	require.NoError(t, store.Groups().Create(context.Background(), g))
	return g
}

func mkCustomer(groupID uint, email string) domain.Customer {
	return domain.Customer{GroupID: groupID, FirstName: "Bob", LastName: "B", Email: email}
}

func TestCreateOneCustomer(t *testing.T) {
	store := memory.NewStore()
	s := NewCustomerService(store.Customers(), store.Groups())
	g := seedGroup(t, store)

	c := mkCustomer(g.ID, "bob@example.com")
	created, err := s.CreateOne(context.Background(), &c)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	// 组不存在
	orphan := mkCustomer(999, "x@example.com")
	_, err = s.CreateOne(context.Background(), &orphan)
	assert.ErrorIs(t, err, domain.ErrGroupNotFound)

	// (email, group_id) 撞库
	dup := mkCustomer(g.ID, "bob@example.com")
	_, err = s.CreateOne(context.Background(), &dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateCustomer)
}

func TestCreateBatchRules(t *testing.T) {
	store := memory.NewStore()
	s := NewCustomerService(store.Customers(), store.Groups())
	g := seedGroup(t, store)

	var ve *ValidationError

	// 少于两条
	_, err := s.CreateBatch(context.Background(), []domain.Customer{mkCustomer(g.ID, "a@example.com")})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Msg, "at least two")

	// group_id 不一致
	_, err = s.CreateBatch(context.Background(), []domain.Customer{
		mkCustomer(g.ID, "a@example.com"),
		mkCustomer(g.ID+1, "b@example.com"),
	})
	assert.ErrorAs(t, err, &ve)

	// 批内邮箱重复
	_, err = s.CreateBatch(context.Background(), []domain.Customer{
		mkCustomer(g.ID, "same@example.com"),
		mkCustomer(g.ID, "same@example.com"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateCustomer)

	// 全部失败时一条都不能入库
	list, err := s.ListByGroup(context.Background(), g.ID, "email", false)
	require.NoError(t, err)
	assert.Empty(t, list)

	// 正常两条
	created, err := s.CreateBatch(context.Background(), []domain.Customer{
		mkCustomer(g.ID, "a@example.com"),
		mkCustomer(g.ID, "b@example.com"),
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)
	assert.NotZero(t, created[0].ID)
	assert.NotZero(t, created[1].ID)
}

// 批里有一条和库里已有客户撞 (email, group_id)，整批回滚
func TestCreateBatchAtomicAgainstStored(t *testing.T) {
	store := memory.NewStore()
	s := NewCustomerService(store.Customers(), store.Groups())
	g := seedGroup(t, store)

	stored := mkCustomer(g.ID, "stored@example.com")
	_, err := s.CreateOne(context.Background(), &stored)
	require.NoError(t, err)

	_, err = s.CreateBatch(context.Background(), []domain.Customer{
		mkCustomer(g.ID, "fresh@example.com"),
		mkCustomer(g.ID, "stored@example.com"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateCustomer)

	list, err := s.ListByGroup(context.Background(), g.ID, "email", false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "stored@example.com", list[0].Email)
}

func TestCreateBatchGroupMustExist(t *testing.T) {
	store := memory.NewStore()
	s := NewCustomerService(store.Customers(), store.Groups())

	_, err := s.CreateBatch(context.Background(), []domain.Customer{
		mkCustomer(42, "a@example.com"),
		mkCustomer(42, "b@example.com"),
	})
	assert.ErrorIs(t, err, domain.ErrGroupNotFound)
}

func TestGetWithAge(t *testing.T) {
	store := memory.NewStore()
	s := NewCustomerService(store.Customers(), store.Groups())
	g := seedGroup(t, store)

	bd, err := domain.ParseDate("1990-05-17")
	require.NoError(t, err)
	c := mkCustomer(g.ID, "bob@example.com")
	c.Birthday = &bd
	_, err = s.CreateOne(context.Background(), &c)
	require.NoError(t, err)

	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	got, err := s.GetWithAge(context.Background(), c.ID, now)
	require.NoError(t, err)
	require.NotNil(t, got.Age)
	assert.Equal(t, 35, *got.Age)

	_, err = s.GetWithAge(context.Background(), 999, now)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestUpdateCustomer(t *testing.T) {
	store := memory.NewStore()
	s := NewCustomerService(store.Customers(), store.Groups())
	g := seedGroup(t, store)

	a := mkCustomer(g.ID, "a@example.com")
	b := mkCustomer(g.ID, "b@example.com")
	_, err := s.CreateOne(context.Background(), &a)
	require.NoError(t, err)
	_, err = s.CreateOne(context.Background(), &b)
	require.NoError(t, err)

	// 换成组内已占用的邮箱
	upd := b
	upd.Email = "a@example.com"
	_, err = s.Update(context.Background(), &upd)
	assert.ErrorIs(t, err, domain.ErrDuplicateCustomer)

	// 保留自己的邮箱改别的字段
	upd = b
	upd.FirstName = "Robert"
	got, err := s.Update(context.Background(), &upd)
	require.NoError(t, err)
	assert.Equal(t, "Robert", got.FirstName)
	assert.Equal(t, g.ID, got.GroupID)
}

func TestListByGroupSortedByBirthday(t *testing.T) {
	store := memory.NewStore()
	s := NewCustomerService(store.Customers(), store.Groups())
	g := seedGroup(t, store)

	mk := func(email, birthday string) {
		bd, err := domain.ParseDate(birthday)
		require.NoError(t, err)
		c := mkCustomer(g.ID, email)
		c.Birthday = &bd
		_, err = s.CreateOne(context.Background(), &c)
		require.NoError(t, err)
	}
	mk("young@example.com", "2001-03-10")
	mk("old@example.com", "1960-01-02")
	mk("mid@example.com", "1985-07-21")

	asc, err := s.ListByGroup(context.Background(), g.ID, "birthday", false)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	// 升序 = 最早的生日（最老的人）在前
	assert.Equal(t, "old@example.com", asc[0].Email)
	assert.Equal(t, "young@example.com", asc[2].Email)

	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	oldest := asc[0].WithAge(now)
	require.NotNil(t, oldest.Age)
	assert.Equal(t, 65, *oldest.Age)
}

func TestDeleteCustomer(t *testing.T) {
	store := memory.NewStore()
	s := NewCustomerService(store.Customers(), store.Groups())
	g := seedGroup(t, store)

	c := mkCustomer(g.ID, "bob@example.com")
	_, err := s.CreateOne(context.Background(), &c)
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), c.ID))
	assert.ErrorIs(t, s.Delete(context.Background(), c.ID), domain.ErrCustomerNotFound)
}
