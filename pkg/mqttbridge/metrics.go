package mqttbridge

import "github.com/prometheus/client_golang/prometheus"

var (
	commandCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dirigera_mqtt_commands_total",
			Help: "Commands received over MQTT by result.",
		},
		[]string{"result"},
	)
	publishCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dirigera_mqtt_publishes_total",
			Help: "Messages published to the broker by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(commandCounter, publishCounter)
}
