package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "rihla"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	// Matches the 7-day session the client application expects.
	DefaultAccessTTL  = 7 * 24 * time.Hour
	DefaultBcryptCost = 12

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultReservationTopic    = "reservation-events"
	DefaultReservationDLQTopic = ""

	// Fare per route kilometer before the bus-category multiplier.
	DefaultBaseFarePerKm = 0.5

	DefaultPaginationLimit = 100
)
