package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hr-portal/internal/attendance"
	attendanceerrors "hr-portal/internal/attendance/errors"
	"hr-portal/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveStatusChanges recomputes the attendance summary for every
// period a decided leave touches, so dashboards never show figures that
// predate the decision. Summaries stay derived-only: "recompute" here means
// compute fresh and republish, nothing is persisted.
func ConsumeLeaveStatusChanges(
	ctx context.Context,
	reader *kafkago.Reader,
	writer *kafkago.Writer,
	attendanceService attendance.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_status")
	log.Info("leave status consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave status consumer stopped")
				return
			}
			log.Error("fetch leave status message failed", zap.Error(err))
			continue
		}

		var event events.LeaveStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave.status.changed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := recomputeTouchedPeriods(ctx, writer, attendanceService, event, log); err != nil {
			log.Error("recompute summaries for leave decision failed",
				zap.String("leave_id", event.LeaveID),
				zap.String("employee_code", event.EmployeeCode),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave status message failed", zap.Error(err))
			continue
		}

		log.Info("summaries recomputed from leave decision",
			zap.String("leave_id", event.LeaveID),
			zap.String("employee_code", event.EmployeeCode),
			zap.String("status", event.Status),
		)
	}
}

func recomputeTouchedPeriods(
	ctx context.Context,
	writer *kafkago.Writer,
	attendanceService attendance.Service,
	event events.LeaveStatusChangedEvent,
	log *zap.Logger,
) error {
	periods, err := periodsForRange(event.StartDate, event.EndDate)
	if err != nil {
		// A malformed event is logged and dropped, never retried forever.
		log.Warn("leave.status.changed event has invalid dates",
			zap.String("leave_id", event.LeaveID),
			zap.Error(err),
		)
		return nil
	}

	for _, p := range periods {
		summary, err := attendanceService.GetSummary(ctx, event.EmployeeCode, p.Month, p.Year)
		if err != nil {
			// An employee removed after the decision is not a failure.
			if errors.Is(err, attendanceerrors.ErrEmployeeNotFound) {
				log.Warn("employee gone, skipping recompute",
					zap.String("employee_code", event.EmployeeCode),
				)
				return nil
			}
			return err
		}

		if err := publishRecomputed(ctx, writer, summary); err != nil {
			return err
		}
	}
	return nil
}

// periodsForRange lists every (month, year) the leave's date range spans.
func periodsForRange(startDate, endDate string) ([]attendance.Period, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, err
	}

	var periods []attendance.Period
	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(end) {
		p, err := attendance.NewPeriod(int(cursor.Month()), cursor.Year())
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
		cursor = cursor.AddDate(0, 1, 0)
	}
	return periods, nil
}

func publishRecomputed(ctx context.Context, writer *kafkago.Writer, summary attendance.AttendanceSummaryResponse) error {
	event := events.AttendanceSummaryRecomputedEvent{
		EventType:             "attendance.summary.recomputed",
		EmployeeCode:          summary.EmployeeCode,
		Month:                 summary.Month,
		Year:                  summary.Year,
		AbsentDays:            summary.AbsentDays,
		ApprovedLeaveDays:     summary.ApprovedLeaveDays,
		UnapprovedAbsenceDays: summary.UnapprovedAbsenceDays,
		EffectiveDailyRate:    summary.EffectiveDailyDeduction,
		TotalDeduction:        summary.TotalDeduction,
		FinalSalary:           summary.FinalSalary,
		Warnings:              summary.Warnings,
		OccurredAt:            time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return writer.WriteMessages(ctx, kafkago.Message{
		Topic: events.AttendanceSummaryRecomputedTopic,
		Key:   []byte(summary.EmployeeCode),
		Value: payload,
	})
}
