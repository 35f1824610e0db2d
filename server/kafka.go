package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Tenant lifecycle event types published to Kafka.
const (
	EventTenantCreated   = "tenant_created"
	EventTenantUpdated   = "tenant_updated"
	EventTenantDeleted   = "tenant_deleted"
	EventEmployeeAdded   = "employee_added"
	EventEmployeeDeleted = "employee_deleted"
)

const tenantEventsTopic = "tenant-lifecycle"

// TenantEvent is one lifecycle change, keyed by company code so all events
// for a tenant land in the same partition in order.
type TenantEvent struct {
	EventType    string    `json:"event_type"`
	CompanyCode  string    `json:"company_code"`
	EmployeeCode string    `json:"employee_code,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// EventProducer publishes tenant lifecycle events through a worker pool so
// request handlers never block on the broker.
type EventProducer struct {
	writer       *kafka.Writer
	eventChan    chan TenantEvent
	workerCount  int
	shutdownChan chan struct{}
	wg           sync.WaitGroup
}

// NewEventProducer creates a producer with its worker pool running.
func NewEventProducer(broker string) *EventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        tenantEventsTopic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}

	ep := &EventProducer{
		writer:       writer,
		eventChan:    make(chan TenantEvent, 256),
		workerCount:  4,
		shutdownChan: make(chan struct{}),
	}
	ep.startWorkers()
	return ep
}

func (ep *EventProducer) startWorkers() {
	for i := 0; i < ep.workerCount; i++ {
		ep.wg.Add(1)
		go ep.eventWorker(i)
	}
	logrus.Infof("started %d tenant event workers", ep.workerCount)
}

func (ep *EventProducer) eventWorker(id int) {
	defer ep.wg.Done()
	for {
		select {
		case event := <-ep.eventChan:
			if err := ep.sendEventSync(event); err != nil {
				logrus.WithError(err).WithField("worker", id).Warn("failed to send tenant event")
			}
		case <-ep.shutdownChan:
			return
		}
	}
}

// Publish queues an event without blocking. A nil producer (Kafka not
// configured) and a full queue both drop the event; lifecycle events are
// advisory and never fail the request that triggered them.
func (ep *EventProducer) Publish(eventType, companyCode, employeeCode string) {
	if ep == nil {
		return
	}
	event := TenantEvent{
		EventType:    eventType,
		CompanyCode:  companyCode,
		EmployeeCode: employeeCode,
		Timestamp:    time.Now().UTC(),
	}
	select {
	case ep.eventChan <- event:
	default:
		logrus.WithField("event_type", eventType).Warn("tenant event queue full, event dropped")
	}
}

func (ep *EventProducer) sendEventSync(event TenantEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal tenant event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.CompanyCode),
		Value: message,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "company_code", Value: []byte(event.CompanyCode)},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := ep.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write tenant event: %w", err)
	}
	return nil
}

// Close drains the workers and closes the writer.
func (ep *EventProducer) Close() error {
	if ep == nil {
		return nil
	}
	close(ep.shutdownChan)
	ep.wg.Wait()
	return ep.writer.Close()
}
