package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	d := date(t, "1990-05-17")
	assert.Equal(t, "1990-05-17", d.String())

	_, err := ParseDate("1990-13-01")
	assert.Error(t, err)
	_, err = ParseDate("17-05-1990")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(date(t, "2000-01-02"))
	require.NoError(t, err)
	assert.Equal(t, `"2000-01-02"`, string(b))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2000-01-02"`), &d))
	assert.Equal(t, "2000-01-02", d.String())
}

func TestAgeOn(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// 生日已过
	assert.Equal(t, 35, date(t, "1990-05-17").AgeOn(now))
	// 生日正好今天
	assert.Equal(t, 35, date(t, "1990-06-15").AgeOn(now))
	// 生日还没到
	assert.Equal(t, 34, date(t, "1990-06-16").AgeOn(now))
	assert.Equal(t, 34, date(t, "1990-12-01").AgeOn(now))
}

func TestTimeOfDayScan(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.Scan("13:45:01"))
	assert.Equal(t, "13:45:01", tod.String())

	// mysql 带小数秒
	require.NoError(t, tod.Scan([]byte("13:45:01.123456")))
	assert.Equal(t, "13:45:01", tod.String())

	assert.Error(t, tod.Scan(12345))
}

func TestParseUserField(t *testing.T) {
	for _, name := range []string{"first_name", "last_name", "email", "password"} {
		f, ok := ParseUserField(name)
		require.True(t, ok, name)
		assert.Equal(t, name, string(f))
	}
	_, ok := ParseUserField("role")
	assert.False(t, ok)
}

func TestUserFieldApply(t *testing.T) {
	var u User
	UserFieldFirstName.Apply(&u, "Ada")
	UserFieldEmail.Apply(&u, "ada@example.com")
	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, "ada@example.com", u.Email)
}

func TestCustomerWithAge(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	bd := date(t, "1990-05-17")

	withBirthday := Customer{Birthday: &bd}.WithAge(now)
	require.NotNil(t, withBirthday.Age)
	assert.Equal(t, 35, *withBirthday.Age)

	noBirthday := Customer{}.WithAge(now)
	assert.Nil(t, noBirthday.Age)

	b, err := json.Marshal(noBirthday)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"age":null`)
}
