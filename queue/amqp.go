package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/judgenot0/judge-checker/config"
	"github.com/judgenot0/judge-checker/structs"
)

// Dispatcher runs submissions on pooled workers. Work must return w to
// Workers() before it returns or panics.
type Dispatcher interface {
	Workers() chan structs.Worker
	Work(ctx context.Context, w structs.Worker, submission structs.Submission, d structs.Acknowledger)
}

type Queue struct {
	msgs        <-chan amqp.Delivery
	conn        *amqp.Connection
	ch          *amqp.Channel
	queueName   string
	rabbitmqURL string
	workerCount int
	idleTimeout time.Duration
}

func NewQueue() *Queue {
	return &Queue{idleTimeout: 5 * time.Minute}
}

func (q *Queue) InitQueue(config *config.Config) error {
	q.queueName = config.QueueName
	q.rabbitmqURL = config.RabbitMQURL
	q.workerCount = config.WorkerCount

	return q.connect()
}

func (q *Queue) connect() error {
	var err error
	q.conn, err = amqp.Dial(q.rabbitmqURL)
	if err != nil {
		log.Printf("Failed to connect to RabbitMQ: %v", err)
		return err
	}

	q.ch, err = q.conn.Channel()
	if err != nil {
		log.Printf("Failed to open channel: %v", err)
		q.conn.Close()
		return err
	}

	if err = q.ch.Qos(q.workerCount, 0, false); err != nil {
		log.Printf("Failed to set QoS: %v", err)
		q.ch.Close()
		q.conn.Close()
		return err
	}

	args := amqp.Table{
		"x-queue-type": "quorum",
	}
	if _, err = q.ch.QueueDeclare(q.queueName, true, false, false, false, args); err != nil {
		log.Printf("Failed to declare queue: %v", err)
		q.ch.Close()
		q.conn.Close()
		return err
	}

	return nil
}

func (q *Queue) reconnect(ctx context.Context) error {
	log.Println("Attempting to reconnect to RabbitMQ...")

	if q.ch != nil {
		q.ch.Close()
	}
	if q.conn != nil {
		q.conn.Close()
	}

	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := q.connect()
		if err == nil {
			log.Println("Successfully reconnected to RabbitMQ")
			return nil
		}

		log.Printf("Reconnection failed, retrying in %v: %v", backoff, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (q *Queue) connected() bool {
	return q.ch != nil && !q.ch.IsClosed() && q.conn != nil && !q.conn.IsClosed()
}

func (q *Queue) QueueMessage(ctx context.Context, submission []byte) error {
	if !q.connected() {
		if err := q.reconnect(ctx); err != nil {
			return err
		}
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         submission,
	}

	err := q.ch.PublishWithContext(ctx, "", q.queueName, false, false, msg)
	if err != nil {
		log.Printf("Failed to publish message, attempting reconnect: %v", err)
		if reconnectErr := q.reconnect(ctx); reconnectErr != nil {
			return reconnectErr
		}
		err = q.ch.PublishWithContext(ctx, "", q.queueName, false, false, msg)
	}

	return err
}

func (q *Queue) StartConsume(ctx context.Context, dispatcher Dispatcher) error {
	for {
		select {
		case <-ctx.Done():
			log.Println("Context cancelled, stopping consumer")
			return nil
		default:
		}

		if !q.connected() {
			if err := q.reconnect(ctx); err != nil {
				log.Printf("Failed to reconnect: %v", err)
				continue
			}
		}

		var err error
		q.msgs, err = q.ch.Consume(q.queueName, "", false, false, false, false, nil)
		if err != nil {
			log.Printf("Failed to start consuming: %v, attempting reconnect", err)
			if reconnectErr := q.reconnect(ctx); reconnectErr != nil {
				log.Printf("Reconnection failed: %v", reconnectErr)
			}
			continue
		}

		log.Println("Started consuming messages from queue")

		if stopped := q.consume(ctx, dispatcher); stopped {
			log.Println("Context cancelled, stopping consumer loop")
			return nil
		}

		log.Println("Message channel closed, attempting to reconnect...")
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(5 * time.Second):
		}
	}
}

// consume drains q.msgs until the channel closes or ctx is done, and
// reports which of the two happened.
func (q *Queue) consume(ctx context.Context, dispatcher Dispatcher) bool {
	for {
		select {
		case <-ctx.Done():
			return true
		case d, ok := <-q.msgs:
			if !ok {
				return false
			}
			if !deliver(ctx, d.Body, d, dispatcher, q.idleTimeout) {
				return true
			}
		}
	}
}

// deliver decodes one message and hands it to a free worker. It returns
// false when ctx ended before a worker became free.
func deliver(ctx context.Context, body []byte, d structs.Acknowledger, dispatcher Dispatcher, idleTimeout time.Duration) bool {
	var submission structs.Submission
	if err := json.Unmarshal(body, &submission); err != nil {
		log.Printf("Invalid message body: %v", err)
		d.Nack(false, false)
		return true
	}

	select {
	case <-ctx.Done():
		d.Nack(false, true)
		return false
	case worker := <-dispatcher.Workers():
		go func() {
			defer func() {
				// Work hands the worker back itself, even while panicking.
				if r := recover(); r != nil {
					log.Printf("Panic while judging: %v", r)
					d.Nack(false, true)
				}
			}()
			dispatcher.Work(ctx, worker, submission, d)
		}()
	case <-time.After(idleTimeout):
		log.Println("Warning: No workers available, message will be redelivered")
		d.Nack(false, true)
	}
	return true
}

func (q *Queue) Close() error {
	var errs []error
	if q.ch != nil {
		if err := q.ch.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if q.conn != nil {
		if err := q.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
