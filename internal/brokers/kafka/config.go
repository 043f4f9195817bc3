package kafka

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Brokers          []string
	ClientID         string
	GroupID          string
	SecurityProtocol string
	SASLMechanism    string
	SASLUsername     string
	SASLPassword     string
	Timeout          time.Duration
}

func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return fmt.Errorf("Kafka brokers are required")
	}

	for _, broker := range c.Brokers {
		if broker == "" {
			return fmt.Errorf("empty Kafka broker address")
		}
	}

	if c.ClientID == "" {
		c.ClientID = "match-highlights"
	}

	if c.GroupID == "" {
		c.GroupID = "match-highlights-group"
	}

	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}

	if c.SecurityProtocol == "" {
		c.SecurityProtocol = "PLAINTEXT"
	}

	validProtocols := []string{"PLAINTEXT", "SSL", "SASL_PLAINTEXT", "SASL_SSL"}
	valid := false
	for _, protocol := range validProtocols {
		if c.SecurityProtocol == protocol {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid security protocol: %s", c.SecurityProtocol)
	}

	if strings.HasPrefix(c.SecurityProtocol, "SASL_") {
		if c.SASLMechanism == "" {
			c.SASLMechanism = "PLAIN"
		}

		validMechanisms := []string{"PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512"}
		valid := false
		for _, mechanism := range validMechanisms {
			if c.SASLMechanism == mechanism {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid SASL mechanism: %s", c.SASLMechanism)
		}

		if c.SASLUsername == "" || c.SASLPassword == "" {
			return fmt.Errorf("SASL username and password are required for SASL authentication")
		}
	}

	return nil
}

func (c *Config) GetConnectionString() string {
	return strings.Join(c.Brokers, ",")
}

// configMap builds the shared confluent config, with clientIDSuffix keeping
// producer and consumer client IDs distinguishable in broker logs.
func (c *Config) configMap(clientIDSuffix string) map[string]interface{} {
	m := map[string]interface{}{
		"bootstrap.servers": strings.Join(c.Brokers, ","),
		"client.id":         c.ClientID + clientIDSuffix,
	}

	if c.SecurityProtocol != "PLAINTEXT" {
		m["security.protocol"] = c.SecurityProtocol
	}

	if strings.HasPrefix(c.SecurityProtocol, "SASL_") {
		m["sasl.mechanism"] = c.SASLMechanism
		m["sasl.username"] = c.SASLUsername
		m["sasl.password"] = c.SASLPassword
	}

	return m
}

func DefaultConfig() *Config {
	return &Config{
		Brokers:          []string{"localhost:9092"},
		ClientID:         "match-highlights",
		GroupID:          "match-highlights-group",
		SecurityProtocol: "PLAINTEXT",
		Timeout:          30 * time.Second,
	}
}
