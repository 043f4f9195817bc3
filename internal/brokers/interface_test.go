package brokers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishError(t *testing.T) {
	cause := errors.New("broker unreachable")
	err := &PublishError{MatchID: "match-42", Topic: "match-events", Err: cause}

	assert.Contains(t, err.Error(), "match-42")
	assert.Contains(t, err.Error(), "match-events")
	assert.ErrorIs(t, err, cause)
}
