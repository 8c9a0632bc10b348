package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields собирает поля записи по функциям из конфига,
// пустые строковые значения опускаются.
func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields)
	for k, ft := range ftm {
		value := ft(c, d)
		if strValue, ok := value.(string); ok {
			if strValue != "" {
				f[k] = strValue
			}
			continue
		}
		f[k] = value
	}
	return f
}

// New возвращает middleware логирования запросов api.
// Ответы со статусом 3xx и выше пишутся с уровнем warning.
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
	}
	d := new(data)
	ftm := getFuncTagMap(cfg, d)
	return func(c *fiber.Ctx) error {
		d.start = time.Now()
		err := c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return err
		}

		const message = "запрос api"
		if cfg.Logger == nil {
			log.WithFields(getLogrusFields(ftm, c, d)).Info(message)
			return err
		}
		entity := cfg.Logger.WithFields(getLogrusFields(ftm, c, d))
		if c.Response() != nil && c.Response().StatusCode() >= 300 {
			entity.Warn(message)
		} else {
			entity.Info(message)
		}
		return err
	}
}
