package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishOnNilProducerIsNoOp(t *testing.T) {
	var ep *EventProducer
	assert.NotPanics(t, func() {
		ep.Publish(EventTenantCreated, "ACME", "")
	})
	assert.NoError(t, ep.Close())
}

func TestPublishQueuesEvent(t *testing.T) {
	ep := &EventProducer{
		eventChan:    make(chan TenantEvent, 1),
		shutdownChan: make(chan struct{}),
	}

	ep.Publish(EventEmployeeAdded, "ACME", "E1")

	select {
	case event := <-ep.eventChan:
		assert.Equal(t, EventEmployeeAdded, event.EventType)
		assert.Equal(t, "ACME", event.CompanyCode)
		assert.Equal(t, "E1", event.EmployeeCode)
		assert.False(t, event.Timestamp.IsZero())
	default:
		t.Fatal("expected event on queue")
	}
}

func TestPublishDropsWhenQueueFull(t *testing.T) {
	ep := &EventProducer{
		eventChan:    make(chan TenantEvent, 1),
		shutdownChan: make(chan struct{}),
	}

	ep.Publish(EventTenantCreated, "ACME", "")
	assert.NotPanics(t, func() {
		ep.Publish(EventTenantUpdated, "ACME", "")
	})
	assert.Len(t, ep.eventChan, 1)
}

func TestTenantEventJSONShape(t *testing.T) {
	event := TenantEvent{
		EventType:   EventTenantDeleted,
		CompanyCode: "globex",
		Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "tenant_deleted", decoded["event_type"])
	assert.Equal(t, "globex", decoded["company_code"])
	assert.NotContains(t, decoded, "employee_code")
}
