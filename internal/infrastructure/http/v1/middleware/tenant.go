package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockpile/internal/core/apperror"
	appctx "stockpile/internal/core/context"
	"stockpile/internal/core/tenant"
	"stockpile/internal/infrastructure/storage/postgres"
	"stockpile/pkg/logger"
)

// TenantDB middleware resolves the tenant database from the authenticated
// user and injects the pool into context. Must run AFTER Auth.
//
// Flow:
// 1. Read the user set by Auth
// 2. Get pool from the tenant manager (tenant id = user id)
// 3. Create TxManager for this request
// 4. Inject pool, TxManager, and Tenant into context
func TenantDB(manager *tenant.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		// 1. The tenant is the authenticated user
		user := appctx.GetUser(ctx)
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}
		tenantID := user.UserID

		// 2. Get pool from manager
		managedPool, err := manager.GetPool(ctx, tenantID)
		if err != nil {
			logger.Warn(ctx, "tenant pool error", "user_id", tenantID, "error", err)

			switch {
			case errors.Is(err, tenant.ErrTenantNotFound):
				_ = c.Error(apperror.NewNotFound("tenant", tenantID))
			case errors.Is(err, tenant.ErrTenantNotActive):
				_ = c.Error(apperror.NewForbidden("account is not active").WithDetail("user_id", tenantID))
			case errors.Is(err, tenant.ErrMaxPoolLimit):
				appErr := apperror.NewInternal(err)
				appErr.HTTPStatus = http.StatusServiceUnavailable
				appErr.Message = "service temporarily unavailable"
				_ = c.Error(appErr.WithDetail("user_id", tenantID))
			default:
				_ = c.Error(apperror.NewInternal(err).WithDetail("user_id", tenantID))
			}
			c.Abort()
			return
		}

		// Track active request for graceful shutdown
		managedPool.AcquireRef()
		defer managedPool.ReleaseRef()

		// 3. Create TxManager for this request
		txManager := postgres.NewTxManagerFromRawPool(managedPool.Pool())

		// 4. Inject into context
		ctx = tenant.WithPool(ctx, managedPool.Pool())
		ctx = tenant.WithTxManager(ctx, txManager)
		ctx = tenant.WithTenant(ctx, managedPool.Tenant())

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
