package initializers

import (
	"context"

	"hr-eval-backend/config"
	"hr-eval-backend/fiberlog"
	authhandler "hr-eval-backend/lib/auth"
	candidatehandler "hr-eval-backend/lib/candidate"
	evaluationhandler "hr-eval-backend/lib/evaluation"
	planhandler "hr-eval-backend/lib/plan"
	prevtesthandler "hr-eval-backend/lib/prevtest"
	questionhandler "hr-eval-backend/lib/question"
	reporthandler "hr-eval-backend/lib/report"
	reportworker "hr-eval-backend/lib/report/worker"
	sessionhandler "hr-eval-backend/lib/session"
	sessionhub "hr-eval-backend/lib/ws/hub/session-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	sessionhub.Init()
	authhandler.NewHandler()
	planhandler.NewHandler()
	candidatehandler.NewHandler()
	evaluationhandler.NewHandler()
	sessionhandler.NewHandler()
	reporthandler.NewHandler()
	questionhandler.NewHandler()
	prevtesthandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача уведомления председателя о новых отчётах
	reportworker.StartWorker(ctx)
}
