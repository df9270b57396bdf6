package consumer

import (
	"context"
	"encoding/json"
	"go-uerp/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Notifier delivers a user-facing notification. The default implementation
// only logs; a mail or push gateway can be dropped in behind it.
type Notifier interface {
	Notify(ctx context.Context, recipientID, subject, body string) error
}

type logNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) Notifier {
	return &logNotifier{logger: logger.Named("notifier")}
}

func (n *logNotifier) Notify(_ context.Context, recipientID, subject, body string) error {
	n.logger.Info("notification",
		zap.String("recipient_id", recipientID),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	notifier Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveApprovedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave_approved event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifier.Notify(ctx, event.EmployeeID,
			"Leave request approved",
			"Your leave request has been approved.",
		); err != nil {
			log.Error("notify leave approval failed",
				zap.String("leave_id", event.LeaveID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
		}
	}
}

func ConsumeCertificateLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	notifier Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.certificate_lifecycle")
	log.Info("certificate lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("certificate lifecycle consumer stopped")
				return
			}
			log.Error("fetch certificate lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.CertificateIssuedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode certificate_issued event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifier.Notify(ctx, event.StudentID,
			"Certificate issued",
			"Your certificate "+event.CertificateNumber+" is ready for collection.",
		); err != nil {
			log.Error("notify certificate issued failed",
				zap.String("certificate_id", event.CertificateID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit certificate lifecycle message failed", zap.Error(err))
		}
	}
}
