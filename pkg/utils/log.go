package utils

import (
	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. Bootstrap configures its level,
// formatter and output alongside the logrus standard logger.
var Log = logrus.New()
