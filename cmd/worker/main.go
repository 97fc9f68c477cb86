// cmd/worker/main.go
package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"

	"github.com/minicrm/campaign-backend/internal/config"
	"github.com/minicrm/campaign-backend/internal/delivery"
	"github.com/minicrm/campaign-backend/internal/queue"
)

// The worker plays the vendor out of process: it consumes dispatches
// published by the server's AMQP backend, simulates the delay and the
// weighted outcome, and reports receipts back over HTTP.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	conn, err := amqp.Dial(cfg.Delivery.AMQPURL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("Failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		queue.TopicVendorDispatch,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		log.Fatal("Failed to declare queue:", err)
	}

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		log.Fatal("Failed to register consumer:", err)
	}

	sink := delivery.NewHTTPReceiptSink(cfg.Delivery.ReceiptURL)
	backend := delivery.NewSimulatedBackend(
		time.Duration(cfg.Delivery.MinDelayMs)*time.Millisecond,
		time.Duration(cfg.Delivery.MaxDelayMs)*time.Millisecond,
		cfg.Delivery.SuccessRate,
		sink,
	)

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var dispatch delivery.Dispatch
			if err := json.Unmarshal(d.Body, &dispatch); err != nil {
				log.Println("Invalid dispatch:", err)
				d.Ack(false)
				continue
			}

			// Send only schedules the outcome timer, so acking here is
			// fine; a receipt lost to a crash stays PENDING by design.
			if err := backend.Send(dispatch); err != nil {
				log.Println("Failed to start simulated send:", err)
			}
			log.Println("📩 Simulating delivery for log", dispatch.LogID)
			d.Ack(false)
		}
	}()

	log.Println("Worker running, waiting for dispatches...")
	<-forever
}
