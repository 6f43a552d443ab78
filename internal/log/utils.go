package log

import (
	"encoding/json"
	native "log"
	"os"
	"strings"
)

// Tag marks every line this application writes, for downstream log scrapers
const Tag = "[alembic-ecs] "

// Global loggers for this application
var (
	Logger = native.New(os.Stdout, Tag, 0)
	Errors = native.New(os.Stderr, Tag, 0)
)

// PrintJSON print JSON marshaled value, keeping the tag on every line
func PrintJSON(records interface{}) {
	marshaled, _ := json.MarshalIndent(records, "", "  ") // nolint
	for _, line := range strings.Split(string(marshaled), "\n") {
		Logger.Println(line)
	}
}
