package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer-groups-api/internal/domain"
	"customer-groups-api/internal/repo/memory"
)

func newGroupService(store *memory.Store) *GroupService {
	return NewGroupService(store.Groups(), store.Users(), nil)
}

func seedAdmin(t *testing.T, store *memory.Store, email string) *domain.User {
	t.Helper()
	u := &domain.User{FirstName: "Ada", LastName: "Lovelace", Email: email, Password: "x"}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func TestCreateGroup(t *testing.T) {
	store := memory.NewStore()
	s := newGroupService(store)
	admin := seedAdmin(t, store, "ada@example.com")

	g, err := s.Create(context.Background(), admin.ID, "VIP", "high value customers")
	require.NoError(t, err)
	assert.NotZero(t, g.ID)
	assert.Equal(t, admin.ID, g.AdminID)
	// 创建时间由服务端打点
	assert.False(t, g.CreatedOn.IsZero())
}

func TestCreateGroupAdminMustExist(t *testing.T) {
	store := memory.NewStore()
	s := newGroupService(store)

	_, err := s.Create(context.Background(), 999, "VIP", "desc")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreateGroupDuplicateFingerprint(t *testing.T) {
	store := memory.NewStore()
	s := newGroupService(store)
	admin := seedAdmin(t, store, "ada@example.com")

	_, err := s.Create(context.Background(), admin.ID, "VIP", "desc")
	require.NoError(t, err)
	_, err = s.Create(context.Background(), admin.ID, "VIP", "desc")
	assert.ErrorIs(t, err, domain.ErrDuplicateGroup)

	// 描述不同就不算重复
	_, err = s.Create(context.Background(), admin.ID, "VIP", "other desc")
	assert.NoError(t, err)
}

func TestGetUpdateDeleteGroup(t *testing.T) {
	store := memory.NewStore()
	s := newGroupService(store)
	admin := seedAdmin(t, store, "ada@example.com")
	g, err := s.Create(context.Background(), admin.ID, "VIP", "desc")
	require.NoError(t, err)

	got, err := s.Get(context.Background(), g.ID)
	require.NoError(t, err)
	assert.Equal(t, "VIP", got.Name)

	updated, err := s.Update(context.Background(), g.ID, "VVIP", "new desc")
	require.NoError(t, err)
	assert.Equal(t, "VVIP", updated.Name)
	assert.Equal(t, "new desc", updated.Description)

	require.NoError(t, s.Delete(context.Background(), g.ID))
	_, err = s.Get(context.Background(), g.ID)
	assert.ErrorIs(t, err, domain.ErrGroupNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), g.ID), domain.ErrGroupNotFound)
}

func TestListByUserSorted(t *testing.T) {
	store := memory.NewStore()
	s := newGroupService(store)
	admin := seedAdmin(t, store, "ada@example.com")

	for _, name := range []string{"bravo", "alpha", "charlie"} {
		_, err := s.Create(context.Background(), admin.ID, name, "desc "+name)
		require.NoError(t, err)
	}

	asc, err := s.ListByUser(context.Background(), admin.ID, "name", false)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, "alpha", asc[0].Name)
	assert.Equal(t, "charlie", asc[2].Name)

	desc, err := s.ListByUser(context.Background(), admin.ID, "name", true)
	require.NoError(t, err)
	assert.Equal(t, "charlie", desc[0].Name)

	_, err = s.ListByUser(context.Background(), 999, "name", false)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// 同一天创建的分组按当天时刻排，方向跟主键一致
func TestListByUserCreatedAtTieBreak(t *testing.T) {
	store := memory.NewStore()
	admin := seedAdmin(t, store, "ada@example.com")

	day, err := domain.ParseDate("2025-03-01")
	require.NoError(t, err)
	mkGroup := func(name, clock string) {
		var tod domain.TimeOfDay
		require.NoError(t, tod.Scan(clock))
		g := &domain.Group{AdminID: admin.ID, Name: name, Description: "d " + name, CreatedOn: day, CreatedTime: tod}
		require.NoError(t, store.Groups().Create(context.Background(), g))
	}
	mkGroup("late", "18:00:00")
	mkGroup("early", "06:00:00")
	mkGroup("noon", "12:00:00")

	s := newGroupService(store)
	asc, err := s.ListByUser(context.Background(), admin.ID, "created_at", false)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, []string{"early", "noon", "late"}, []string{asc[0].Name, asc[1].Name, asc[2].Name})

	desc, err := s.ListByUser(context.Background(), admin.ID, "created_at", true)
	require.NoError(t, err)
	assert.Equal(t, "late", desc[0].Name)
}

func TestDeleteUserCascades(t *testing.T) {
	store := memory.NewStore()
	gs := newGroupService(store)
	admin := seedAdmin(t, store, "ada@example.com")

	g, err := gs.Create(context.Background(), admin.ID, "VIP", "desc")
	require.NoError(t, err)
	cust := &domain.Customer{GroupID: g.ID, FirstName: "Bob", LastName: "B", Email: "bob@example.com"}
	require.NoError(t, store.Customers().Create(context.Background(), cust))

	require.NoError(t, store.Users().Delete(context.Background(), admin.ID))

	_, err = gs.Get(context.Background(), g.ID)
	assert.ErrorIs(t, err, domain.ErrGroupNotFound)
	cs := NewCustomerService(store.Customers(), store.Groups())
	_, err = cs.Get(context.Background(), cust.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
