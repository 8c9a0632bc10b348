package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	reportapimodels "hr-eval-backend/models/api/report"
)

// GenerateReport собирает pdf итогового отчёта по кандидату.
func GenerateReport(report reportapimodels.ReportView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.CellFormat(0, 10, "Итоговый отчёт комиссии", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 12)
	writeRow := func(label, value string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(60, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}
	writeRow("Кандидат:", report.CandidateName)
	writeRow("Сессия:", report.SessionTitle)
	writeRow("Итоговый балл:", fmt.Sprintf("%.1f из 100", report.TotalScore))
	writeRow("Оценка:", report.Grade)
	writeRow("Рекомендация:", report.RecommendationName)
	writeRow("Сформирован:", report.FinalizedAt.Format("02.01.2006 15:04"))
	pdf.Ln(6)

	// таблица разбивки по темам
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(70, 8, "Тема", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Вес", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 8, "Средний %", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 8, "Вклад", "1", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, item := range report.TopicBreakdown {
		average := "-"
		if item.Evaluated {
			average = fmt.Sprintf("%.1f", item.AveragePercent)
		}
		pdf.CellFormat(70, 8, item.TopicName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%.1f", item.Weight), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 8, average, "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 8, fmt.Sprintf("%.1f", item.WeightedScore), "1", 1, "C", false, 0, "")
	}

	if report.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Заключение комиссии", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, report.Notes, "", "L", false)
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
