package config

import (
	"fmt"
	"os"
)

func Template() string {
	return decodeTemplate
}

// WriteTemplate writes the default config to path. An existing file is left
// alone unless overwrite is set.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(decodeTemplate), 0o600)
}

const decodeTemplate = `input = "./data/itch_sample"
mode = "mmap"          # mmap | stream
chunk_size = 65536     # stream mode read buffer
format = "text"        # text | json
limit = 0              # 0 prints every record
summary = true
# log_level = "debug" # unset keeps TEMPO_LOG_LEVEL or info

[generate]
output = "./data/itch_sample"
adds = 1000
seed = 123456
stock_locator = 1
symbol = "AAPL"
`
