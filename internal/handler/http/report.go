package http

import (
	"net/http"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/report"
	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/response"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
)

type ReportHandler interface {
	Aggregate(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	RecurringAbsences(w http.ResponseWriter, r *http.Request)
	ExamAlerts(w http.ResponseWriter, r *http.Request)
	Dashboard(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func aggregateRequestFromQuery(r *http.Request) report.AggregateRequest {
	q := r.URL.Query()
	return report.AggregateRequest{
		Kind:    report.Kind(q.Get("kind")),
		GroupBy: report.GroupBy(q.Get("group_by")),
		Metric:  report.Metric(q.Get("metric")),
		From:    q.Get("from"),
		To:      q.Get("to"),
		Sector:  q.Get("sector"),
	}
}

// referenceDate reads the optional "date" parameter, defaulting to today.
func referenceDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	val := r.URL.Query().Get("date")
	if val == "" {
		return time.Now(), true
	}
	d, ok := validator.IsValidDate(val)
	if !ok {
		response.ValidationError(w, map[string]string{"date": "date must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}

// Aggregate handles GET /reports/aggregate
func (h *reportHandlerImpl) Aggregate(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.Aggregate(r.Context(), companyIDParam(r), aggregateRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rep)
}

// Export handles GET /reports/export?format=pdf|xlsx
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	format := report.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = report.FormatPDF
	}

	file, err := h.reportService.Export(r.Context(), companyIDParam(r), aggregateRequestFromQuery(r), format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if file.URL != "" {
		w.Header().Set("Content-Location", file.URL)
	}
	response.Attachment(w, file.Name, file.ContentType, file.Data)
}

// RecurringAbsences handles GET /reports/recurring-absences
func (h *reportHandlerImpl) RecurringAbsences(w http.ResponseWriter, r *http.Request) {
	today, ok := referenceDate(w, r)
	if !ok {
		return
	}

	rows, err := h.reportService.RecurringAbsences(r.Context(), companyIDParam(r), today)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// ExamAlerts handles GET /reports/exam-alerts
func (h *reportHandlerImpl) ExamAlerts(w http.ResponseWriter, r *http.Request) {
	today, ok := referenceDate(w, r)
	if !ok {
		return
	}

	alerts, err := h.reportService.ExamAlerts(r.Context(), companyIDParam(r), today)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, alerts)
}

// Dashboard handles GET /dashboard?month=YYYY-MM
func (h *reportHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	month := time.Now()
	if val := r.URL.Query().Get("month"); val != "" {
		parsed, err := time.Parse("2006-01", val)
		if err != nil {
			response.ValidationError(w, map[string]string{"month": "month must be YYYY-MM"})
			return
		}
		month = parsed
	}

	dashboard, err := h.reportService.Dashboard(r.Context(), companyIDParam(r), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard)
}
