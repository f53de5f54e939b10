// Package queue publica los eventos de notificación en RabbitMQ. La
// publicación es best-effort: cualquier error se devuelve al caller, que lo
// registra en el log y sigue; un broker caído nunca interrumpe una operación
// de negocio.
package queue

import (
	"context"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andresjj98/appagencia-api/internal/application/notification"
	"github.com/andresjj98/appagencia-api/pkg/logger"
)

var _ notification.EventPublisher = (*Publisher)(nil)

// Publisher conexión perezosa a RabbitMQ. La conexión se abre en el primer
// Publish y se reabre sola si el broker la cierra.
type Publisher struct {
	url string
	log *logger.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher construye el publicador. No conecta todavía.
func NewPublisher(url string, log *logger.Logger) *Publisher {
	return &Publisher{url: url, log: log}
}

// Publish publica el evento en la cola cuyo nombre es la routing key,
// declarándola si no existe. Mensajes persistentes en colas durables.
func (p *Publisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	ch, err := p.channel()
	if err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(
		routingKey,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		p.reset()
		return err
	}
	err = ch.PublishWithContext(ctx,
		"",         // exchange por defecto
		routingKey, // routing key = nombre de la cola
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.reset()
		return err
	}
	return nil
}

// Close cierra la conexión (shutdown ordenado).
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil && p.conn != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: dial falló")
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		p.log.Warn().Err(err).Msg("rabbitmq: abrir canal falló")
		return nil, err
	}
	p.conn = conn
	p.ch = ch
	return ch, nil
}

func (p *Publisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
