package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotStatus(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	validity := 10 * time.Minute

	assert.Equal(t, "restorable", snapshotStatus(now.Add(-time.Minute), false, now, validity))
	assert.Equal(t, "restorable", snapshotStatus(now.Add(-validity), false, now, validity))
	assert.Equal(t, "expired", snapshotStatus(now.Add(-validity-time.Second), false, now, validity))
	assert.Equal(t, "expired", snapshotStatus(now.Add(time.Hour), false, now, validity))
	assert.Equal(t, "consumed", snapshotStatus(now.Add(-time.Minute), true, now, validity))
}
