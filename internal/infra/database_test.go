package infra

import (
	"testing"

	"github.com/hc2580411/vwms/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDatabase(":memory:")
	require.NoError(t, err)
	return db
}

func TestEnsureSchemaSeedsFreshStore(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, EnsureSchema(db))

	var users []model.User
	require.NoError(t, db.Order("id").Find(&users).Error)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, model.RoleAdmin, users[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].PasswordHash), []byte("admin")))
	assert.Equal(t, "user", users[1].Username)
	assert.Equal(t, model.RoleEmployee, users[1].Role)

	var catCount, unitCount, prodCount, contactCount int64
	db.Model(&model.Category{}).Count(&catCount)
	db.Model(&model.Unit{}).Count(&unitCount)
	db.Model(&model.Product{}).Count(&prodCount)
	db.Model(&model.Contact{}).Count(&contactCount)
	assert.EqualValues(t, 3, catCount)
	assert.EqualValues(t, 3, unitCount)
	assert.EqualValues(t, 3, prodCount)
	assert.EqualValues(t, 3, contactCount)

	var cur model.Setting
	require.NoError(t, db.Where("key = ?", model.SettingDisplayCurrency).First(&cur).Error)
	assert.Equal(t, "AED", cur.Value)
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, EnsureSchema(db))
	// Second run must not reseed or fail on existing columns.
	require.NoError(t, EnsureSchema(db))

	var userCount int64
	db.Model(&model.User{}).Count(&userCount)
	assert.EqualValues(t, 2, userCount)
}
