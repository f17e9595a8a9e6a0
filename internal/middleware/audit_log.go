package middleware

import (
	"github.com/gin-gonic/gin"
)

// Audit action types.
const (
	ActionLogin          = "login"
	ActionRegister       = "register"
	ActionLogout         = "logout"
	ActionCreateMenu     = "create_menu"
	ActionUpdateMenu     = "update_menu"
	ActionDeleteMenu     = "delete_menu"
	ActionImportMenus    = "import_menus"
	ActionCreatePurchase = "create_purchase"
	ActionUpdatePurchase = "update_purchase"
	ActionDeletePurchase = "delete_purchase"
	ActionRecommend      = "recommend"
)

// AuditLog records a user action. It never blocks the request; a nil al
// disables auditing.
func AuditLog(al *AsyncLogger, c *gin.Context, actionType, message string, fields map[string]interface{}) {
	if al == nil {
		return
	}
	entry := newRequestEntry(c, "info", message)
	entry.ActionType = actionType
	if len(fields) > 0 {
		entry.WithFields(fields)
	}
	al.Log(entry)
}

// AuditLogError records a failed user action.
func AuditLogError(al *AsyncLogger, c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	if al == nil {
		return
	}
	entry := newRequestEntry(c, "error", message)
	entry.ActionType = actionType
	if err != nil {
		entry.Error = err.Error()
	}
	if len(fields) > 0 {
		entry.WithFields(fields)
	}
	al.Log(entry)
}
