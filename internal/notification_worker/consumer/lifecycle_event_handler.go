package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/clearbridge-loan-origination/internal/domain/shared"
	"github.com/clearbridge-loan-origination/internal/notification_worker/service"
	"github.com/clearbridge-loan-origination/internal/platform/messaging/producers"
)

// LifecycleEventHandler handles incoming lifecycle event messages from Kafka
type LifecycleEventHandler struct {
	dispatchService service.DispatchService
	producer        producers.DeadLetterPublisher
	logger          *slog.Logger
}

// NewLifecycleEventHandler creates a new handler
func NewLifecycleEventHandler(
	logger *slog.Logger,
	dispatchService service.DispatchService,
	producer producers.DeadLetterPublisher,
) *LifecycleEventHandler {
	return &LifecycleEventHandler{
		dispatchService: dispatchService,
		producer:        producer,
		logger:          logger,
	}
}

// HandleMessage processes Kafka messages
func (h *LifecycleEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var event shared.LifecycleEvent
	if err := json.Unmarshal(value, &event); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal lifecycle event from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		// Send to DLQ if available
		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
			} else {
				h.logger.Info("Successfully published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				// Message handled, commit offset
				return nil
			}
		}
		// Allow Kafka retries
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	logger := h.logger
	if event.CorrelationID != "" {
		logger = h.logger.With("correlation_id", event.CorrelationID)
	}

	logger.Info("Received lifecycle event",
		"event_id", event.EventID.String(),
		"type", event.Type,
		"application_id", event.ApplicationID.String(),
	)

	if err := h.dispatchService.DispatchNotification(ctx, &event); err != nil {
		logger.Error("Failed to dispatch notification",
			"event_id", event.EventID.String(),
			"type", event.Type,
			"error", err,
		)
		return fmt.Errorf("dispatching event %s failed: %w", event.EventID.String(), err)
	}

	logger.Info("Successfully dispatched event", "event_id", event.EventID.String())
	return nil
}
