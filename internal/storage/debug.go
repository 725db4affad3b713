package storage

import (
	"context"

	"github.com/sirupsen/logrus"
)

var debug *logger

func d(s string, args ...interface{}) {
	debug.debug(s, args...)
}

type logger struct {
	entry           *logrus.Entry
	debuggerEnabled bool
}

func (l *logger) debug(s string, args ...interface{}) {
	if l == nil || !l.debuggerEnabled {
		return
	}
	if l.entry == nil {
		l.entry = logrus.WithContext(context.Background()).WithField("component", "storage")
	}
	l.entry.Debugf(s, args...)
}
