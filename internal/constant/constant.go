package constant

// Constant package provides constants used throughout the application.

type ctxKey string

const (
	CorrelationIDKey ctxKey = "CorrelationID"
)

// Keys used with gin.Context.Set / Get.
const (
	ClaimsKey    = "claims"
	RequestIDKey = "requestId"
)

const (
	StatusRecovered = "recovered"
	LatestItemLimit = 6
)
