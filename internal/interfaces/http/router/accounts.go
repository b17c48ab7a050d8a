package router

import (
	"github.com/erp/ledger/internal/infrastructure/auth"
	"github.com/erp/ledger/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// PermissionGuard builds middleware that admits only callers holding permission
type PermissionGuard func(permission string) gin.HandlerFunc

// NewAccountRoutes builds the chart-of-accounts route group.
// A nil guard registers the routes without permission checks.
func NewAccountRoutes(h *handler.AccountHandler, guard PermissionGuard) *DomainGroup {
	g := NewDomainGroup("accounts", "/ledger/accounts")

	g.POST("", guarded(guard, auth.PermissionAccountCreate, h.Create)...).
		GET("/tree", guarded(guard, auth.PermissionAccountRead, h.GetTree)...).
		GET("/by-parent/:name", guarded(guard, auth.PermissionAccountRead, h.GetByParentName)...).
		GET("/:id/balance", guarded(guard, auth.PermissionAccountRead, h.GetBalance)...).
		PUT("/:id", guarded(guard, auth.PermissionAccountUpdate, h.Update)...).
		DELETE("/:id", guarded(guard, auth.PermissionAccountDelete, h.Delete)...)

	return g
}

func guarded(guard PermissionGuard, permission string, h gin.HandlerFunc) []gin.HandlerFunc {
	if guard == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{guard(permission), h}
}
