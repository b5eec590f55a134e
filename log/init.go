package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

const (
	maxLogSize  = 64 * 1024 * 1024
	maxLogFiles = 4
)

var (
	logrusplus *Logrusplus

	// DefaultLogger is used for messages not belonging to a dedicated module
	DefaultLogger *logrus.Logger

	// CoreLogger records every pool ledger operation
	CoreLogger *logrus.Logger

	// RPCLogger records the rpc request handling
	RPCLogger *logrus.Logger
)

func init() {
	logrusplus = New()

	logsDir := "./logs/"

	_, err := os.Stat(logsDir)
	if err != nil {
		if os.IsNotExist(err) {
			err := os.Mkdir(logsDir, 0755)
			if err != nil {
				panic(err)
			}
		}
	}

	DefaultLogger = logrusplus.Logger(logsDir+"default", maxLogSize, maxLogFiles, logrus.InfoLevel)
	CoreLogger = logrusplus.Logger(logsDir+"core", maxLogSize, maxLogFiles, logrus.DebugLevel)
	RPCLogger = logrusplus.Logger(logsDir+"rpc", maxLogSize, maxLogFiles, logrus.InfoLevel)
}
