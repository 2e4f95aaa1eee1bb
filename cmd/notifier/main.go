package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/courtsidehq/venue-booking-backend/internal/config"
	"github.com/courtsidehq/venue-booking-backend/internal/notify"
)

// The notifier drains booking lifecycle events from RabbitMQ. It stands in
// for the downstream notification channel (email, push) and acks every
// delivery it can decode.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required for the notifier")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	consumer, err := notify.NewConsumer(cfg.AMQPURL, cfg.AMQPExchange, "booking-notifications", []string{
		notify.RKBookingRequested,
		notify.RKBookingApproved,
		notify.RKBookingRejected,
		notify.RKBookingCancelled,
	})
	if err != nil {
		log.Fatalf("failed to connect to broker: %v", err)
	}
	defer consumer.Close()

	deliveries, err := consumer.Deliveries(ctx)
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	logger.Info("notifier running", "exchange", cfg.AMQPExchange)

	for {
		select {
		case <-ctx.Done():
			logger.Info("notifier shutting down")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Warn("delivery channel closed")
				return
			}
			ev, err := notify.DecodeBookingEvent(d.Body)
			if err != nil {
				logger.Error("dropping malformed event", "error", err)
				_ = d.Nack(false, false)
				continue
			}
			logger.Info("booking event",
				"routing_key", d.RoutingKey,
				"booking_code", ev.BookingCode,
				"status", ev.Status,
				"requester_id", ev.RequesterID,
			)
			_ = d.Ack(false)
		}
	}
}
