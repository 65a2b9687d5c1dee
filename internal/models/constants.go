package models

const (
	TopicOrderParsed = "order_parsed"

	MenuSourceConfig   = "config"
	MenuSourcePostgres = "postgres"

	OutputNone     = "none"
	OutputConsole  = "console"
	OutputKafka    = "kafka"
	OutputParquet  = "parquet"
	OutputPostgres = "postgres"
	OutputRedis    = "redis"

	CloudProviderLocal = "local"
	CloudProviderS3    = "s3"
)
