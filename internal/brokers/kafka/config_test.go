package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr string
	}{
		{
			name:   "defaults are valid",
			config: DefaultConfig(),
		},
		{
			name:    "no brokers",
			config:  &Config{},
			wantErr: "Kafka brokers are required",
		},
		{
			name:    "empty broker address",
			config:  &Config{Brokers: []string{"localhost:9092", ""}},
			wantErr: "empty Kafka broker address",
		},
		{
			name: "invalid security protocol",
			config: &Config{
				Brokers:          []string{"localhost:9092"},
				SecurityProtocol: "TLS",
			},
			wantErr: "invalid security protocol",
		},
		{
			name: "sasl without credentials",
			config: &Config{
				Brokers:          []string{"localhost:9092"},
				SecurityProtocol: "SASL_SSL",
			},
			wantErr: "SASL username and password are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfigValidateAppliesDefaults(t *testing.T) {
	config := &Config{Brokers: []string{"kafka-1:9092", "kafka-2:9092"}}

	assert.NoError(t, config.Validate())
	assert.Equal(t, "match-highlights", config.ClientID)
	assert.Equal(t, "match-highlights-group", config.GroupID)
	assert.Equal(t, "PLAINTEXT", config.SecurityProtocol)
	assert.Equal(t, "kafka-1:9092,kafka-2:9092", config.GetConnectionString())
}
