package refresh

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnee-network/explorer/core/types"
)

func TestNewSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		expErr   bool
	}{
		{"@every 10s", false},
		{"@hourly", false},
		{"*/5 * * * *", false},
		{"every now and then", true},
		{"", true},
	}
	for i, test := range tests {
		_, err := New(test.schedule)
		if (err != nil) != test.expErr {
			t.Errorf("Test %v: unexpected error %v", i, err)
		}
		if err != nil && !errors.Is(err, types.ErrInvalidArgument) {
			t.Errorf("Test %v: expect invalid argument, got %v", i, err)
		}
	}
}

func TestTicks(t *testing.T) {
	s, err := New("@every 1s")
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	select {
	case <-s.C():
	case <-time.After(3 * time.Second):
		t.Fatal("no tick")
	}
}

func TestTickDropsWhenFull(t *testing.T) {
	s, err := New("@hourly")
	require.NoError(t, err)
	s.tick()
	s.tick()
	assert.Len(t, s.ticks, 1)
}

func TestStatus(t *testing.T) {
	s, err := New("@hourly")
	require.NoError(t, err)
	assert.Error(t, s.Status())
	require.NoError(t, s.Start())
	assert.NoError(t, s.Status())
	require.NoError(t, s.Stop())
	assert.Error(t, s.Status())
}
