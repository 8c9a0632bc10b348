package reportworker

import (
	"context"
	"fmt"
	"time"

	"hr-eval-backend/config"
	"hr-eval-backend/db"
	reportstore "hr-eval-backend/lib/report/store"
	"hr-eval-backend/lib/smtp"
	baseworker "hr-eval-backend/lib/utils/base-worker"
	"hr-eval-backend/lib/utils/helpers"
)

// StartWorker запускает рассылку уведомлений о готовых отчётах
// создателям сессий.
func StartWorker(ctx context.Context) {
	interval := time.Duration(config.Conf.Worker.ReportNotifyIntervalInSec) * time.Second
	i := &impl{
		BaseImpl: *baseworker.NewInstance("ReportNotifyWorker", 15*time.Second, interval),
		store:    reportstore.NewInstance(db.DB),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	store reportstore.Provider
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.store.ListUnnotified()
	if err != nil {
		logger.WithError(err).Error("Ошибка получения списка отчётов для уведомления")
		return
	}
	for _, report := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		if report.Session == nil || report.Session.CreatedBy == nil || report.Candidate == nil {
			continue
		}
		to := report.Session.CreatedBy.Email
		if to == "" {
			continue
		}
		message := fmt.Sprintf(
			"Сформирован отчёт по кандидату %s.\nИтоговый балл: %.1f (%s).",
			report.Candidate.Name, report.TotalScore, report.Grade)
		err = smtp.Instance.SendEMail(config.Conf.Smtp.User, to, message, "Итоговый отчёт готов")
		if err != nil {
			logger.
				WithError(err).
				WithField("report_id", report.ID).
				Error("Ошибка отправки уведомления об отчёте")
			continue
		}
		err = i.store.Update(report.ID, map[string]interface{}{"NotifiedAt": time.Now()})
		if err != nil {
			logger.
				WithError(err).
				WithField("report_id", report.ID).
				Error("Ошибка сохранения отметки об уведомлении")
		}
	}
}
