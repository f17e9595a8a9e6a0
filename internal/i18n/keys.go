package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	// ErrKeyInvalidCredentials covers both unknown users and wrong passwords.
	ErrKeyInvalidCredentials   = "error.invalid_credentials"
	ErrKeyUserExists           = "error.user_exists"
	ErrKeyForbidden            = "error.forbidden"
	ErrKeyNotFound             = "error.not_found"
	ErrKeyMenuNotFound         = "error.menu_not_found"
	ErrKeyPurchaseNotFound     = "error.purchase_not_found"
	ErrKeyRateLimitExceeded    = "error.rate_limit_exceeded"
	ErrKeyConflict             = "error.conflict"
	ErrKeyInvalidToken         = "error.invalid_token"
	ErrKeyTokenRequired        = "error.token_required"
	ErrKeyTimeout              = "error.timeout"
	ErrKeyServiceUnavailable   = "error.service_unavailable"
	ErrKeyInvalidTarget        = "error.validation.target"
	ErrKeyInvalidCatalog       = "error.validation.catalog"
	ErrKeyInvalidQuantity      = "error.validation.quantity"
	ErrKeyInvalidMonth         = "error.validation.month"
	ErrKeyIdempotencyKeyReused = "error.idempotency_key_reused"
)

// Label keys. Their messages are fmt templates.
const (
	// LabelKeyItemCount formats one combination line item from name and count.
	LabelKeyItemCount = "label.item_count"
)
