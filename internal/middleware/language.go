package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/mobimama/mobimama-api/internal/i18n"
	"github.com/mobimama/mobimama-api/internal/session"
)

const ContextLanguage = "language"

// Language resolves the request language: an explicit lang query parameter
// wins, then the session's stored choice, then the default. A valid explicit
// choice is written back to the session so it sticks for later requests.
// Unknown codes are ignored, not errors.
func Language(bundle *i18n.Bundle, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFrom(c)

		lang := i18n.DefaultLanguage
		if sess != nil && bundle.Supported(sess.Language) {
			lang = sess.Language
		}

		if q := c.Query("lang"); q != "" && bundle.Supported(q) {
			lang = q
			if sess != nil && sess.Language != q {
				sess.Language = q
				// Best effort; the request still renders in q on failure.
				_ = store.Save(c.Request.Context(), sess)
			}
		}

		c.Set(ContextLanguage, lang)
		c.Next()
	}
}

// LanguageFrom returns the resolved request language.
func LanguageFrom(c *gin.Context) string {
	if v, ok := c.Get(ContextLanguage); ok {
		if lang, ok := v.(string); ok {
			return lang
		}
	}
	return i18n.DefaultLanguage
}
