package usecase

import (
	"crypto/rand"
	"math/big"
	"time"
)

const (
	caseNumberPrefix      = "MH-"
	caseNumberSuffixLen   = 6
	caseNumberAlphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	maxCaseNumberAttempts = 5
)

// NewCaseNumber returns MH-YYYYMMDD-XXXXXX with six random base36 characters.
// Uniqueness is enforced by the repository, not here.
func NewCaseNumber(now time.Time) (string, error) {
	suffix := make([]byte, caseNumberSuffixLen)
	max := big.NewInt(int64(len(caseNumberAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		suffix[i] = caseNumberAlphabet[n.Int64()]
	}
	return caseNumberPrefix + now.UTC().Format("20060102") + "-" + string(suffix), nil
}
