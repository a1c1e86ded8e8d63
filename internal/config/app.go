package config

import "os"

func Development() bool {
	d, ok := os.LookupEnv("DEVELOPMENT")
	return ok && d != "0"
}

func Port() string {
	if port, ok := os.LookupEnv("APP_PORT"); ok {
		return port
	}
	return ":8080"
}

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}
