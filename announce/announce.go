package announce

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/angas/gridhost-go/config"
	"github.com/angas/gridhost-go/sim"
)

const publishTimeout = 5 * time.Second

// Publisher pushes simulation summaries to an MQTT broker so external
// dashboards can follow recomputations. Strictly outbound, the simulation
// never consumes anything from the broker.
type Publisher struct {
	mqttClient mqtt.Client
	logger     *slog.Logger
	topic      string
}

func New(cnfg config.AppConfigAnnounce) *Publisher {
	logger := slog.Default().With("module", "announce")

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cnfg.Broker, cnfg.Port))
	opts.SetClientID("gridhost")
	opts.SetUsername(cnfg.Username)
	opts.SetPassword(cnfg.Password)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(client mqtt.Client) {
		logger.Info("announce MQTT connected")
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		logger.Warn("announce MQTT connection lost", slog.Any("error", err))
	}

	mqttLogger := slog.Default().With("module", "mqtt")
	mqtt.CRITICAL = newMqttLogger(mqttLogger, slog.LevelError)
	mqtt.ERROR = newMqttLogger(mqttLogger, slog.LevelError)
	mqtt.WARN = newMqttLogger(mqttLogger, slog.LevelWarn)

	return &Publisher{
		mqttClient: mqtt.NewClient(opts),
		logger:     logger,
		topic:      cnfg.GetTopic(),
	}
}

func (p *Publisher) Connect() error {
	p.logger.Debug("connecting announce MQTT client")
	if token := p.mqttClient.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (p *Publisher) Disconnect() {
	p.mqttClient.Disconnect(250)
}

// PublishSummary sends the summary as retained JSON so late subscribers
// pick up the latest state.
func (p *Publisher) PublishSummary(summary sim.Summary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}

	token := p.mqttClient.Publish(p.topic, 0, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publishing summary to %s: timeout after %s", p.topic, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing summary to %s: %w", p.topic, err)
	}

	p.logger.Debug("summary published",
		slog.String("topic", p.topic),
		slog.Float64("annualCurtailmentPct", summary.AnnualCurtailmentPct))

	return nil
}
