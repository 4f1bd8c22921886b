package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/uyildiz/vehicle-maintenance/internal/db"
)

// OdometerReading is the payload published on fleet/<vehicle_id>/odometer.
type OdometerReading struct {
	VehicleID string `json:"vehicle_id"`
	Mileage   int    `json:"mileage"`
}

// Config defines the MQTT connection parameters for the odometer listener.
type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

// ConfigFromEnv builds the listener config from environment variables.
func ConfigFromEnv() Config {
	cfg := Config{
		Broker:   os.Getenv("MQTT_BROKER"),
		ClientID: os.Getenv("MQTT_CLIENT_ID"),
		Username: os.Getenv("MQTT_USERNAME"),
		Password: os.Getenv("MQTT_PASSWORD"),
		Topic:    os.Getenv("MQTT_ODOMETER_TOPIC"),
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "maintenance-odometer"
	}
	if cfg.Topic == "" {
		cfg.Topic = "fleet/+/odometer"
	}
	return cfg
}

// OdometerListener subscribes to odometer telemetry and keeps each vehicle's
// current mileage up to date.
type OdometerListener struct {
	vehicles db.VehicleCollection
	client   mqtt.Client
	topic    string
}

// NewOdometerListener connects to the broker and subscribes to the odometer
// topic. Returns an error if the broker is unreachable.
func NewOdometerListener(cfg Config, vehicles db.VehicleCollection) (*OdometerListener, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("mqtt broker address is required")
	}

	l := &OdometerListener{vehicles: vehicles, topic: cfg.Topic}

	opts := mqtt.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(c mqtt.Client) {
		log.WithField("topic", l.topic).Info("MQTT connected, subscribing to odometer telemetry")
		if token := c.Subscribe(l.topic, 0, l.onMessage); token.Wait() && token.Error() != nil {
			log.WithError(token.Error()).Error("odometer subscribe failed")
		}
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.WithError(err).Error("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	l.client = client
	return l, nil
}

func (l *OdometerListener) onMessage(_ mqtt.Client, msg mqtt.Message) {
	if err := l.process(msg.Payload()); err != nil {
		log.WithError(err).WithField("topic", msg.Topic()).Warn("dropped odometer reading")
	}
}

// process applies one odometer reading. Readings below the stored mileage
// are dropped: the odometer is monotonically non-decreasing in principle,
// and a lower value is almost always a stale or misrouted message.
func (l *OdometerListener) process(payload []byte) error {
	var reading OdometerReading
	if err := json.Unmarshal(payload, &reading); err != nil {
		return fmt.Errorf("invalid odometer payload: %w", err)
	}
	if reading.VehicleID == "" {
		return fmt.Errorf("odometer reading missing vehicle_id")
	}
	if reading.Mileage < 0 {
		return fmt.Errorf("odometer reading cannot be negative")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	vehicle, err := l.vehicles.FindVehicleByID(ctx, reading.VehicleID)
	if err != nil {
		return fmt.Errorf("unknown vehicle %s: %w", reading.VehicleID, err)
	}
	if reading.Mileage < vehicle.CurrentMileage {
		return fmt.Errorf("reading %d below current mileage %d", reading.Mileage, vehicle.CurrentMileage)
	}
	return l.vehicles.UpdateVehicleMileage(ctx, reading.VehicleID, reading.Mileage)
}

// Close disconnects from the broker.
func (l *OdometerListener) Close() {
	if l.client != nil && l.client.IsConnected() {
		l.client.Disconnect(250)
	}
}
