package config

type MongoConfig struct {
	Uri      string
	Database string
}

func NewMongoConfig() *MongoConfig {
	return &MongoConfig{
		Uri:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database: getEnv("MONGODB_DB", "codelab"),
	}
}
