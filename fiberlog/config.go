package fiberlog

import "github.com/sirupsen/logrus"

// Config задаёт логгер и состав полей записи о запросе.
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

// ConfigDefault пишет в глобальный логгер минимальный набор полей.
var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
}
