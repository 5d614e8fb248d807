package services_test

import (
	"regexp"
	"testing"

	"github.com/SscSPs/investment_ledger_app/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestNewReferralCode(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"Ravi Kumar", "RAVIKUMAR"},
		{"  asha ", "ASHA"},
		{"", "USER"},
		{" \t ", "USER"},
	}
	for _, tt := range tests {
		pattern := regexp.MustCompile(`^` + tt.prefix + `\d{4}$`)
		for range 20 {
			code := services.NewReferralCode(tt.name)
			assert.Regexp(t, pattern, code, "name %q", tt.name)
			assert.NotEqual(t, '0', code[len(tt.prefix)], "suffix is between 1000 and 9999")
		}
	}
}
