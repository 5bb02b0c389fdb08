package board

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	envServerURL = "BOARDSTREAM_SERVER_URL"
	envAPIKey    = "BOARDSTREAM_API_KEY"
)

// FromEnv constructs a Client from BOARDSTREAM_SERVER_URL and
// BOARDSTREAM_API_KEY. A .env file in the working directory is loaded first
// when present. Explicit options override the environment.
func FromEnv(optFns ...func(o *Options)) (*Client, error) {
	_ = godotenv.Load()

	baseURL := os.Getenv(envServerURL)
	if baseURL == "" {
		return nil, fmt.Errorf("%s is not set", envServerURL)
	}

	fns := make([]func(o *Options), 0, len(optFns)+1)
	fns = append(fns, WithAPIKey(os.Getenv(envAPIKey)))
	fns = append(fns, optFns...)

	return New(baseURL, fns...), nil
}
