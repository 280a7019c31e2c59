package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFreeze(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	restore := Freeze(&at)
	assert.Equal(t, at, Now())
	started := Now()
	at = at.Add(3 * time.Second)
	assert.Equal(t, 3*time.Second, Since(started))
	restore()
	assert.WithinDuration(t, time.Now(), Now(), time.Second)
}
