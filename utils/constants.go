// File: utils/constants.go
package utils

// AuthCachePrefix is the prefix used for Redis session token keys.
const AuthCachePrefix = "auth:"

// VerificationPrefix is the prefix used for verification code keys.
const VerificationPrefix = "verify:"

// VerificationCodeLength is the number of digits sent to the phone.
const VerificationCodeLength = 6
