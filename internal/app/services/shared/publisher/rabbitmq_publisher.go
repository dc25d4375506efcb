package publisher

import (
	"context"
	"sync"

	"lesson-display-service/internal/app/contracts"
	"lesson-display-service/internal/app/models"
	"lesson-display-service/internal/pkg/constvars"
	"lesson-display-service/internal/pkg/exceptions"
	"lesson-display-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type rabbitMQPublisher struct {
	ch       *amqp.Channel
	exchange string
	log      *zap.Logger
	mu       sync.Mutex
}

// NewRabbitMQPublisher opens a channel and declares the durable fanout exchange
// that display clients bind their own queues to.
func NewRabbitMQPublisher(conn *amqp.Connection, exchange string, log *zap.Logger) (contracts.PageEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, exceptions.ErrRabbitMQDeclareExchange(err, exchange)
	}

	err = ch.ExchangeDeclare(
		exchange,            // name
		amqp.ExchangeFanout, // kind
		true,                // durable
		false,               // autoDelete
		false,               // internal
		false,               // noWait
		nil,                 // args
	)
	if err != nil {
		ch.Close()
		return nil, exceptions.ErrRabbitMQDeclareExchange(err, exchange)
	}

	return &rabbitMQPublisher{
		ch:       ch,
		exchange: exchange,
		log:      log,
	}, nil
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, event *models.PageEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Type:         "display.page_changed",
		Body:         body,
		DeliveryMode: amqp.Transient,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, "", false, false, msg); err != nil {
		p.log.Error("rabbitMQPublisher.Publish error calling PublishWithContext",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingExchangeKey, p.exchange),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.exchange)
	}
	return nil
}

func (p *rabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Close()
}
