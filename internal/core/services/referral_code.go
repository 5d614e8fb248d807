package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
)

const (
	defaultReferralPrefix    = "USER"
	maxReferralCodeAttempts  = 25
	referralSuffixLowerBound = 1000
	referralSuffixSpan       = 9000
)

// ReferralCodeGenerator derives a candidate referral code from an account name.
type ReferralCodeGenerator func(name string) string

// NewReferralCode returns the uppercased, whitespace-stripped name (or "USER")
// followed by a random 4-digit suffix.
func NewReferralCode(name string) string {
	return referralPrefix(name) + fmt.Sprintf("%d", referralSuffixLowerBound+rand.IntN(referralSuffixSpan))
}

func referralPrefix(name string) string {
	prefix := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	if prefix == "" {
		prefix = defaultReferralPrefix
	}
	return strings.ToUpper(prefix)
}

// uniqueReferralCode draws candidates until one is not in use.
func (s *investmentService) uniqueReferralCode(ctx context.Context, name string) (string, error) {
	for range maxReferralCodeAttempts {
		code := s.codeGen(name)
		exists, err := s.accountRepo.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check referral code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique referral code for %q after %d attempts", name, maxReferralCodeAttempts)
}
