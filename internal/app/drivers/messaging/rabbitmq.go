package messaging

import (
	"konsulin-assessment-engine/internal/app/config"
	"log"
	"net"
	"net/url"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

func rabbitMQURL(driverConfig *config.DriverConfig) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(driverConfig.RabbitMQ.Username, driverConfig.RabbitMQ.Password),
		Host:   net.JoinHostPort(driverConfig.RabbitMQ.Host, driverConfig.RabbitMQ.Port),
		Path:   "/",
	}
	return u.String()
}

func NewRabbitMQ(driverConfig *config.DriverConfig) *amqp091.Connection {
	conn, err := amqp091.DialConfig(rabbitMQURL(driverConfig), amqp091.Config{
		Vhost:      driverConfig.RabbitMQ.VHost,
		Heartbeat:  10 * time.Second,
		Locale:     "en_US",
		Properties: amqp091.Table{"connection_name": "assessment-engine"},
	})
	if err != nil {
		log.Fatalf("Failed to connect to rabbitMQ on vhost %q: %s", driverConfig.RabbitMQ.VHost, err.Error())
	}
	log.Println("Successfully connected to rabbitMQ")
	return conn
}
