package config

import "time"

const (
	DefaultPort     = "8000"
	DefaultLogLevel = "info"

	DefaultStoreBackend = BackendFile
	DefaultSnapshotPath = "database.json"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "hostelhub"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultBookingEventsTopic = "hostelhub.booking.created"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
