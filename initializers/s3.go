package initializers

import (
	"context"

	s3client "hr-eval-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3() {
	client, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	err = client.MakeBucket(context.Background())
	if err != nil {
		log.WithError(err).Error("Ошибка создания бакета S3")
	}

	s3client.Instance = client
	log.Info("S3 клиент успешно инициализирован")
}
