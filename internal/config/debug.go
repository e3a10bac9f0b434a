package config

import "os"

func IsDebug() bool {
	return os.Getenv("ARCHIE_DEBUG") == "1"
}
