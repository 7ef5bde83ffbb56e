// Package i18n translates user-facing messages. Pricing errors are keyed by
// their error kind so clients can show a localized message next to the
// machine-readable kind.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quote-service/internal/domain/model"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// Parse Accept-Language header (e.g., "ja-JP,ja;q=0.9,en;q=0.8")
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
		// Extract base language (e.g., "en" from "en-US")
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		// Normalize to lowercase
		lang = strings.ToLower(lang)
		// Validate it's a supported locale
		if _, ok := GetTranslator().messages[lang]; ok {
			return lang
		}
	}

	return DefaultLocale
}

// TranslateKind returns the localized message of a pricing error kind.
func (t *Translator) TranslateKind(kind model.ErrorKind, locale string) string {
	key := KindKey(kind)
	if msg := t.Translate(key, locale); msg != key {
		return msg
	}
	return kind.DefaultMessage()
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			// Error messages
			ErrKeyInvalidRequest:     "Invalid request",
			ErrKeyInvalidRequestBody: "Invalid request body",
			ErrKeyInternalError:      "An unexpected error occurred",
			ErrKeyUnauthorized:       "Unauthorized",
			ErrKeyAPIKeyRequired:     "API key is required",
			ErrKeyInvalidAPIKey:      "Invalid API key",
			ErrKeyForbidden:          "Forbidden",
			ErrKeyNotFound:           "Not found",
			ErrKeyRateLimitExceeded:  "Too many requests, please try again later",
			ErrKeyConflict:           "Conflict",
			ErrKeyTimeout:            "The request took too long",
			ErrKeyServiceUnavailable: "Service temporarily unavailable",

			ErrKeyShareNotFound:         "Shared comparison not found",
			ErrKeyShareExpired:          "This shared comparison has expired",
			ErrKeySharePasswordRequired: "This shared comparison is password protected",
			ErrKeyInvalidSharePassword:  "Incorrect password",
			ErrKeyInvalidShareToken:     "Invalid or expired share token",
			ErrKeyInvalidShareExpiry:    "Share expiry must be between 1 hour and 30 days",
			ErrKeyInvalidCostModel:      "Invalid cost model",

			KindKey(model.KindInvalidDimension):        "Dimensions must be positive",
			KindKey(model.KindInvalidQuantity):         "Quantity is out of range",
			KindKey(model.KindInvalidPrinting):         "Invalid printing options",
			KindKey(model.KindSizeViolation):           "Size exceeds the limits for this package type",
			KindKey(model.KindIncompatibleCombination): "This package type cannot be made from this material",
			KindKey(model.KindDuplicateQuantities):     "Duplicate quantities were removed",
			KindKey(model.KindQuantityOrderWarning):    "Quantities are not in ascending order",
			KindKey(model.KindEmptyQuantities):         "At least one quantity is required",
			KindKey(model.KindTooManyQuantities):       "At most 10 quantities can be compared",
			KindKey(model.KindMinimumQuantityNotMet):   "Quantity is below the minimum order quantity",
			KindKey(model.KindUnknownPackageType):      "Unknown package type",
			KindKey(model.KindUnknownMaterialType):     "Unknown material",
			KindKey(model.KindUnknownPrintingType):     "Unknown printing method",

			// Success messages
			SuccessKeyCacheCleared: "Quote cache cleared",
		},
		"ja": {
			// Error messages
			ErrKeyInvalidRequest:     "リクエストが不正です",
			ErrKeyInvalidRequestBody: "リクエスト本文が不正です",
			ErrKeyInternalError:      "予期しないエラーが発生しました",
			ErrKeyUnauthorized:       "認証されていません",
			ErrKeyAPIKeyRequired:     "APIキーが必要です",
			ErrKeyInvalidAPIKey:      "APIキーが無効です",
			ErrKeyForbidden:          "アクセスが拒否されました",
			ErrKeyNotFound:           "見つかりません",
			ErrKeyRateLimitExceeded:  "リクエストが多すぎます。しばらくしてから再試行してください",
			ErrKeyConflict:           "競合が発生しました",
			ErrKeyTimeout:            "処理がタイムアウトしました",
			ErrKeyServiceUnavailable: "サービスが一時的に利用できません",

			ErrKeyShareNotFound:         "共有された見積比較が見つかりません",
			ErrKeyShareExpired:          "共有リンクの有効期限が切れています",
			ErrKeySharePasswordRequired: "この見積比較はパスワードで保護されています",
			ErrKeyInvalidSharePassword:  "パスワードが正しくありません",
			ErrKeyInvalidShareToken:     "共有トークンが無効か期限切れです",
			ErrKeyInvalidShareExpiry:    "有効期限は1時間から30日の間で指定してください",
			ErrKeyInvalidCostModel:      "コストモデルが不正です",

			KindKey(model.KindInvalidDimension):        "寸法は正の値で指定してください",
			KindKey(model.KindInvalidQuantity):         "数量が範囲外です",
			KindKey(model.KindInvalidPrinting):         "印刷条件が不正です",
			KindKey(model.KindSizeViolation):           "この包装形態のサイズ上限を超えています",
			KindKey(model.KindIncompatibleCombination): "この包装形態ではこの素材を使用できません",
			KindKey(model.KindDuplicateQuantities):     "重複した数量を除外しました",
			KindKey(model.KindQuantityOrderWarning):    "数量が昇順ではありません",
			KindKey(model.KindEmptyQuantities):         "数量を1つ以上指定してください",
			KindKey(model.KindTooManyQuantities):       "比較できる数量は最大10件です",
			KindKey(model.KindMinimumQuantityNotMet):   "最小発注数量に達していません",
			KindKey(model.KindUnknownPackageType):      "不明な包装形態です",
			KindKey(model.KindUnknownMaterialType):     "不明な素材です",
			KindKey(model.KindUnknownPrintingType):     "不明な印刷方式です",

			// Success messages
			SuccessKeyCacheCleared: "見積キャッシュを削除しました",
		},
	}
}
