package service

import (
	"fmt"
	"time"

	"github.com/companieshouse/chs.go/avro"
	"github.com/companieshouse/chs.go/avro/schema"
	"github.com/companieshouse/chs.go/kafka/producer"
	"github.com/companieshouse/chs.go/log"
	"github.com/finmarkets/checkout.api.finmarkets.io/config"
	"github.com/finmarkets/checkout.api.finmarkets.io/dao"
	"github.com/finmarkets/checkout.api.finmarkets.io/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ProducerTopic is the topic to which the payment recorded kafka message is sent
const ProducerTopic = "payment-recorded"

// ProducerSchemaName is the schema which will be used to send the payment recorded kafka message with
const ProducerSchemaName = "payment-recorded"

// recorded jobs are retried this many times before being given up on
const recordAttempts = 3

// paymentRecorded represents the avro schema for the payment recorded message
type paymentRecorded struct {
	PaymentRecordID string `avro:"payment_record_id"`
	CheckoutID      string `avro:"checkout_id,omitempty"`
}

// handleRecordMessage allows the kafka production to be swapped out in unit tests
var handleRecordMessage = produceRecordMessage

// RecorderService persists completed payments and announces them on kafka.
// Recording is best effort: callers hand over a record and move on, and every
// failure is logged rather than surfaced, so the user-facing redirect never
// waits on it.
type RecorderService struct {
	DAO    dao.DAO
	Config config.Config

	jobs  chan models.PaymentRecordDB
	group *errgroup.Group
}

// NewRecorderService returns a recorder with a bounded job queue
func NewRecorderService(d dao.DAO, cfg config.Config) *RecorderService {
	return &RecorderService{
		DAO:    d,
		Config: cfg,
		jobs:   make(chan models.PaymentRecordDB, 64),
		group:  &errgroup.Group{},
	}
}

// Start launches the worker draining the job queue
func (r *RecorderService) Start() {
	r.group.Go(func() error {
		for job := range r.jobs {
			r.process(job)
		}
		return nil
	})
}

// Stop closes the queue and waits for in-flight jobs to finish
func (r *RecorderService) Stop() {
	close(r.jobs)
	_ = r.group.Wait()
}

// Record enqueues a payment record without blocking. When the queue is full
// the record is dropped and logged; the kafka message is the durable signal
// and a dropped in-process job must never delay a redirect.
func (r *RecorderService) Record(record models.PaymentRecordRest) bool {
	paymentDate := record.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now().Truncate(time.Millisecond)
	}

	job := models.PaymentRecordDB{
		ID:            uuid.NewString(),
		UserID:        record.UserID,
		Amount:        FormatAmount(record.Amount),
		DiscountCode:  record.DiscountCode,
		PaymentDate:   paymentDate,
		TransactionID: record.TransactionID,
		CheckoutID:    record.CheckoutID,
		CreatedAt:     time.Now().Truncate(time.Millisecond),
	}

	select {
	case r.jobs <- job:
		return true
	default:
		log.Error(fmt.Errorf("payment record queue full, dropping record"), log.Data{
			"user_id":        job.UserID,
			"transaction_id": job.TransactionID,
		})
		return false
	}
}

// process persists a record, marks the originating checkout session
// recorded and produces the kafka message. Failures are logged only.
func (r *RecorderService) process(job models.PaymentRecordDB) {
	var err error
	for attempt := 1; attempt <= recordAttempts; attempt++ {
		err = r.DAO.CreatePaymentRecord(&job)
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
	}
	if err != nil {
		log.Error(fmt.Errorf("error persisting payment record after %d attempts: [%v]", recordAttempts, err), log.Data{
			"payment_record_id": job.ID,
			"transaction_id":    job.TransactionID,
		})
		return
	}

	if job.CheckoutID != "" {
		patch := models.CheckoutResourceDB{Data: models.CheckoutResourceDataDB{Status: Recorded.String()}}
		if patchErr := r.DAO.PatchCheckoutResource(job.CheckoutID, &patch); patchErr != nil {
			log.Error(fmt.Errorf("error marking checkout session recorded: [%v]", patchErr), log.Data{
				"checkout_id":       job.CheckoutID,
				"payment_record_id": job.ID,
			})
		}
	}

	err = handleRecordMessage(&r.Config, job.ID, job.CheckoutID)
	if err != nil {
		log.Error(fmt.Errorf("error producing payment recorded kafka message: [%v]", err), log.Data{
			"payment_record_id": job.ID,
		})
		return
	}

	log.Info("payment record persisted", log.Data{"payment_record_id": job.ID, "amount": job.Amount})
}

// produceRecordMessage handles creating a producer, marshalling the record id
// into the correct avro schema and sending the message to the topic defined
// in ProducerTopic
func produceRecordMessage(cfg *config.Config, recordID string, checkoutID string) error {
	kafkaProducer, err := producer.New(&producer.Config{Acks: &producer.WaitForAll, BrokerAddrs: cfg.BrokerAddr})
	if err != nil {
		return fmt.Errorf("error creating kafka producer: [%v]", err)
	}

	paymentRecordedSchema, err := schema.Get(cfg.SchemaRegistryURL, ProducerSchemaName)
	if err != nil {
		return fmt.Errorf("error getting schema from schema registry: [%v]", err)
	}
	producerSchema := &avro.Schema{
		Definition: paymentRecordedSchema,
	}

	message, err := prepareRecordMessage(recordID, checkoutID, *producerSchema)
	if err != nil {
		return fmt.Errorf("error preparing kafka message with schema: [%v]", err)
	}

	partition, offset, err := kafkaProducer.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send message in partition: %d at offset %d", partition, offset)
	}
	return nil
}

// prepareRecordMessage is pulled out of produceRecordMessage to allow unit
// testing of the non-kafka portion of code
func prepareRecordMessage(recordID string, checkoutID string, recordedSchema avro.Schema) (*producer.Message, error) {
	recordedMessage := paymentRecorded{PaymentRecordID: recordID, CheckoutID: checkoutID}

	messageBytes, err := recordedSchema.Marshal(recordedMessage)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payment recorded message: [%v]", err)
	}

	producerMessage := &producer.Message{
		Value: messageBytes,
		Topic: ProducerTopic,
	}
	return producerMessage, nil
}
