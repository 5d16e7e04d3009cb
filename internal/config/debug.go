package config

import "os"

func IsDebug() bool {
	return os.Getenv("GPTMCP_DEBUG") == "1"
}
