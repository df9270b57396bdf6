package certification_test

import (
	"regexp"
	"testing"
	"time"

	"go-uerp/internal/certification"

	"github.com/stretchr/testify/assert"
)

func TestFormatCertificateNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^CERT-\d{4}-\d{4}-\d{5}$`)

	t.Run("format", func(t *testing.T) {
		issuedAt := time.Date(2026, 3, 7, 10, 30, 0, 0, time.UTC)

		got := certification.FormatCertificateNumber(issuedAt, 42)

		assert.Equal(t, "CERT-2026-0307-00042", got)
		assert.Regexp(t, pattern, got)
	})

	t.Run("sequence wraps at five digits", func(t *testing.T) {
		issuedAt := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

		got := certification.FormatCertificateNumber(issuedAt, 123456)

		assert.Equal(t, "CERT-2026-1231-23456", got)
		assert.Regexp(t, pattern, got)
	})
}

func TestGenerateVerificationCode(t *testing.T) {
	pattern := regexp.MustCompile(`^VER-[0-9A-F]{16}$`)

	t.Run("format", func(t *testing.T) {
		code, err := certification.GenerateVerificationCode()

		assert.NoError(t, err)
		assert.Regexp(t, pattern, code)
	})

	t.Run("distinct across many generations", func(t *testing.T) {
		seen := make(map[string]struct{}, 10000)
		for i := 0; i < 10000; i++ {
			code, err := certification.GenerateVerificationCode()
			assert.NoError(t, err)
			assert.Regexp(t, pattern, code)

			_, dup := seen[code]
			assert.False(t, dup, "duplicate verification code generated")
			seen[code] = struct{}{}
		}
	})
}
