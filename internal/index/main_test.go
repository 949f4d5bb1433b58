package index

import (
	"os"
	"testing"

	"github.com/mordilloSan/go-logger/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Config{
		Levels: []logger.Level{logger.ErrorLevel},
	})
	os.Exit(m.Run())
}
