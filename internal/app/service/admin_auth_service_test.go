package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/internal/db"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/util"
)

func setupAdminAuthTest(t *testing.T) (AdminAuthService, *gorm.DB) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	svc := NewAdminAuthService(
		repository.NewAdminUserRepository(testDB),
		repository.NewAdminSessionRepository(testDB),
		repository.NewProductRepository(testDB),
		repository.NewWatchRepository(testDB),
		repository.NewUserRepository(testDB),
		"test-secret",
		24*time.Hour,
	)
	return svc, testDB
}

func seedAdminUser(t *testing.T, testDB *gorm.DB, email string, active bool) *model.AdminUser {
	t.Helper()
	hash, err := util.HashPassword("admin-password")
	require.NoError(t, err)
	admin := &model.AdminUser{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "Admin",
		Role:         model.AdminRoleAdmin,
		IsActive:     active,
	}
	require.NoError(t, testDB.Create(admin).Error)
	return admin
}

func TestAdminAuthService_Login(t *testing.T) {
	svc, testDB := setupAdminAuthTest(t)
	defer db.CleanupTestDB(testDB)

	admin := seedAdminUser(t, testDB, "admin@aurelle.test", true)

	result, err := svc.Login("admin@aurelle.test", "admin-password", "127.0.0.1", "test-agent")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, admin.ID, result.Admin.ID)

	// Login is recorded
	var reloaded model.AdminUser
	require.NoError(t, testDB.First(&reloaded, admin.ID).Error)
	assert.Equal(t, 1, reloaded.LoginCount)
	assert.NotNil(t, reloaded.LastLoginAt)

	_, err = svc.Login("admin@aurelle.test", "wrong", "127.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("nobody@aurelle.test", "admin-password", "127.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminAuthService_Login_DisabledAccount(t *testing.T) {
	svc, testDB := setupAdminAuthTest(t)
	defer db.CleanupTestDB(testDB)

	seedAdminUser(t, testDB, "disabled@aurelle.test", false)

	_, err := svc.Login("disabled@aurelle.test", "admin-password", "127.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAdminAuthService_Authenticate_FailClosed(t *testing.T) {
	svc, testDB := setupAdminAuthTest(t)
	defer db.CleanupTestDB(testDB)

	admin := seedAdminUser(t, testDB, "admin@aurelle.test", true)
	result, err := svc.Login("admin@aurelle.test", "admin-password", "127.0.0.1", "test-agent")
	require.NoError(t, err)

	authenticated, err := svc.Authenticate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, authenticated.ID)

	// Garbage tokens are rejected
	_, err = svc.Authenticate("not-a-jwt")
	assert.ErrorIs(t, err, ErrSessionInvalid)

	// A structurally valid JWT without a backing session is rejected too
	orphan, err := util.GenerateAdminToken(admin.ID, admin.Email, string(admin.Role), "test-secret", time.Hour)
	require.NoError(t, err)
	_, err = svc.Authenticate(orphan)
	assert.ErrorIs(t, err, ErrSessionInvalid)

	// Logout deactivates the session; the token dies with it
	require.NoError(t, svc.Logout(result.Token))
	_, err = svc.Authenticate(result.Token)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestAdminAuthService_Authenticate_DeactivatedAccount(t *testing.T) {
	svc, testDB := setupAdminAuthTest(t)
	defer db.CleanupTestDB(testDB)

	admin := seedAdminUser(t, testDB, "admin@aurelle.test", true)
	result, err := svc.Login("admin@aurelle.test", "admin-password", "127.0.0.1", "test-agent")
	require.NoError(t, err)

	// Disabling the account invalidates every live session
	require.NoError(t, testDB.Model(admin).Update("is_active", false).Error)
	_, err = svc.Authenticate(result.Token)
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAdminAuthService_ChangePassword(t *testing.T) {
	svc, testDB := setupAdminAuthTest(t)
	defer db.CleanupTestDB(testDB)

	admin := seedAdminUser(t, testDB, "admin@aurelle.test", true)

	first, err := svc.Login("admin@aurelle.test", "admin-password", "127.0.0.1", "agent-one")
	require.NoError(t, err)
	second, err := svc.Login("admin@aurelle.test", "admin-password", "127.0.0.1", "agent-two")
	require.NoError(t, err)

	err = svc.ChangePassword(admin.ID, first.Token, "wrong", "brand-new-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(admin.ID, first.Token, "admin-password", "brand-new-pass"))

	// The session that changed the password survives, the other is dropped
	_, err = svc.Authenticate(first.Token)
	assert.NoError(t, err)
	_, err = svc.Authenticate(second.Token)
	assert.ErrorIs(t, err, ErrSessionInvalid)

	_, err = svc.Login("admin@aurelle.test", "brand-new-pass", "127.0.0.1", "agent-one")
	assert.NoError(t, err)
}

func TestAdminAuthService_GetDashboardStats(t *testing.T) {
	svc, testDB := setupAdminAuthTest(t)
	defer db.CleanupTestDB(testDB)

	category := seedTestCategory(t, testDB, "Rings", "rings")
	seedCatalogProduct(t, testDB, "Active Ring", "active-ring", "RIN-ACT-000001", category.ID, "100.00", true)
	seedCatalogProduct(t, testDB, "Retired Ring", "retired-ring", "RIN-RET-000002", category.ID, "100.00", false)

	stats, err := svc.GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.ActiveProducts)
	assert.Equal(t, int64(0), stats.TotalWatches)
	assert.Len(t, stats.RecentProducts, 2)
}
