package edition

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// Validator derives the cache validator for one identity on one calendar
// day. It is deliberately content-independent: the value changes at
// midnight, not when the underlying data changes, so a whole day's
// responses for the same identity share one validator.
func Validator(identityKey string, day time.Time) string {
	sum := md5.Sum([]byte(identityKey + day.Format("02012006")))
	return hex.EncodeToString(sum[:])
}
