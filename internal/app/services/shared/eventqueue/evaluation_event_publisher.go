package eventqueue

import (
	"context"
	"fmt"
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/pkg/constvars"
	"konsulin-assessment-engine/internal/pkg/exceptions"
	"konsulin-assessment-engine/internal/pkg/utils"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const deadLetterSuffix = ".dlq"

type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

type confirmChannel interface {
	PublishWithDeferredConfirmWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) (confirmation, error)
	Close() error
}

type amqpConfirmChannel struct {
	*amqp.Channel
}

func (c amqpConfirmChannel) PublishWithDeferredConfirmWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) (confirmation, error) {
	dc, err := c.Channel.PublishWithDeferredConfirmWithContext(ctx, exchange, key, mandatory, immediate, msg)
	if err != nil || dc == nil {
		return nil, err
	}
	return dc, nil
}

// Publisher publishes evaluation events to a durable RabbitMQ queue. The
// channel runs in confirm mode and each publish waits for the confirmation
// of its own delivery tag.
type Publisher struct {
	ch        confirmChannel
	log       *zap.Logger
	queueName string
}

// NewPublisher declares the event queue and its dead-letter queue and enables
// publisher confirms.
func NewPublisher(conn *amqp.Connection, log *zap.Logger, queueName string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	deadLetterQueue := queueName + deadLetterSuffix
	_, err = ch.QueueDeclare(
		deadLetterQueue, // name
		true,            // durable
		false,           // autoDelete
		false,           // exclusive
		false,           // noWait
		nil,             // args
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		amqp.Table{
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": deadLetterQueue,
		},
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return newPublisher(amqpConfirmChannel{ch}, log, queueName), nil
}

func newPublisher(ch confirmChannel, log *zap.Logger, queueName string) *Publisher {
	return &Publisher{
		ch:        ch,
		log:       log,
		queueName: queueName,
	}
}

func (p *Publisher) PublishEvaluationEvent(ctx context.Context, event *models.EvaluationEvent) error {
	requestID := utils.GetRequestID(ctx)
	p.log.Info("eventqueue.PublishEvaluationEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEvaluationIDKey, event.EvaluationID),
		zap.String(constvars.LoggingQueueNameKey, p.queueName),
	)

	msg, err := BuildPublishing(event)
	if err != nil {
		return err
	}

	confirmed, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, "", p.queueName, false, false, msg)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queueName)
	}
	if confirmed == nil {
		return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf(constvars.ErrDevRabbitMQPublishNotConfirmed, p.queueName), p.queueName)
	}

	acked, err := confirmed.WaitContext(ctx)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queueName)
	}
	if !acked {
		return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf(constvars.ErrDevRabbitMQPublishNotConfirmed, p.queueName), p.queueName)
	}

	p.log.Info("eventqueue.PublishEvaluationEvent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEvaluationIDKey, event.EvaluationID),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

// BuildPublishing encodes an event as a persistent JSON message.
func BuildPublishing(event *models.EvaluationEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, exceptions.ErrCannotMarshalJSON(err)
	}
	return amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EvaluationID,
		Type:         event.EventType,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}, nil
}
