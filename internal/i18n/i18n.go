// Package i18n translates user-facing messages for the budget service.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is used when a request names no supported language.
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{messages: defaultMessages}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Supported reports whether locale has its own message table.
func (t *Translator) Supported(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// Translate returns the message for key in locale, falling back to
// DefaultLocale and finally to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Format translates key and applies args to the resulting template.
func (t *Translator) Format(key, locale string, args ...interface{}) string {
	return fmt.Sprintf(t.Translate(key, locale), args...)
}

// ItemLabeler returns the combination line-item label function for locale.
func (t *Translator) ItemLabeler(locale string) func(name string, count int) string {
	tmpl := t.Translate(LabelKeyItemCount, locale)
	return func(name string, count int) string {
		return fmt.Sprintf(tmpl, name, count)
	}
}

// NormalizeLocale reduces an Accept-Language value such as
// "ko-KR,ko;q=0.9,en;q=0.8" to a supported base language.
func NormalizeLocale(acceptLang string) string {
	first := strings.Split(acceptLang, ",")[0]
	lang := strings.TrimSpace(strings.Split(first, ";")[0])
	if idx := strings.IndexAny(lang, "-_"); idx > 0 {
		lang = lang[:idx]
	}
	lang = strings.ToLower(lang)
	if GetTranslator().Supported(lang) {
		return lang
	}
	return DefaultLocale
}

// GetLocale extracts the locale from the request's Accept-Language header.
func GetLocale(c *gin.Context) string {
	return NormalizeLocale(c.GetHeader(AcceptLanguageHeader))
}

var defaultMessages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:       "Invalid request",
		ErrKeyInvalidRequestBody:   "Invalid request body",
		ErrKeyInternalError:        "An unexpected error occurred",
		ErrKeyUnauthorized:         "Unauthorized",
		ErrKeyInvalidCredentials:   "Invalid email or password",
		ErrKeyUserExists:           "User already exists",
		ErrKeyForbidden:            "Forbidden",
		ErrKeyNotFound:             "Not found",
		ErrKeyMenuNotFound:         "Menu not found",
		ErrKeyPurchaseNotFound:     "Purchase not found",
		ErrKeyRateLimitExceeded:    "Too many requests, please try again later",
		ErrKeyConflict:             "Conflict",
		ErrKeyInvalidToken:         "Invalid or expired token",
		ErrKeyTokenRequired:        "Authentication token is required",
		ErrKeyTimeout:              "Request timed out",
		ErrKeyServiceUnavailable:   "Service temporarily unavailable",
		ErrKeyInvalidTarget:        "target: must be a non-negative integer",
		ErrKeyInvalidCatalog:       "catalog: items need an id, a name and a non-negative price",
		ErrKeyInvalidQuantity:      "quantity: must be a positive integer",
		ErrKeyInvalidMonth:         "year/month: not a valid calendar month",
		ErrKeyIdempotencyKeyReused: "Idempotency-Key was already used for a different request",
		LabelKeyItemCount:          "%s x%d",
	},
	"ko": {
		ErrKeyInvalidRequest:       "잘못된 요청입니다",
		ErrKeyInvalidRequestBody:   "요청 본문이 올바르지 않습니다",
		ErrKeyInternalError:        "예기치 않은 오류가 발생했습니다",
		ErrKeyUnauthorized:         "인증이 필요합니다",
		ErrKeyInvalidCredentials:   "이메일 또는 비밀번호가 올바르지 않습니다",
		ErrKeyUserExists:           "이미 존재하는 사용자입니다",
		ErrKeyForbidden:            "권한이 없습니다",
		ErrKeyNotFound:             "찾을 수 없습니다",
		ErrKeyMenuNotFound:         "메뉴를 찾을 수 없습니다",
		ErrKeyPurchaseNotFound:     "구매 내역을 찾을 수 없습니다",
		ErrKeyRateLimitExceeded:    "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요",
		ErrKeyConflict:             "요청이 현재 상태와 충돌합니다",
		ErrKeyInvalidToken:         "토큰이 유효하지 않거나 만료되었습니다",
		ErrKeyTokenRequired:        "인증 토큰이 필요합니다",
		ErrKeyTimeout:              "요청 시간이 초과되었습니다",
		ErrKeyServiceUnavailable:   "일시적으로 서비스를 사용할 수 없습니다",
		ErrKeyInvalidTarget:        "target: 0 이상의 정수여야 합니다",
		ErrKeyInvalidCatalog:       "catalog: 각 항목에는 id, 이름, 0 이상의 가격이 필요합니다",
		ErrKeyInvalidQuantity:      "quantity: 1 이상의 정수여야 합니다",
		ErrKeyInvalidMonth:         "year/month: 올바른 연월이 아닙니다",
		ErrKeyIdempotencyKeyReused: "다른 요청에 이미 사용된 Idempotency-Key입니다",
		LabelKeyItemCount:          "%s %d개",
	},
}
