package dao

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/finmarkets/checkout.api.finmarkets.io/config"
	"github.com/finmarkets/checkout.api.finmarkets.io/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var client *mongo.Client

func getMongoClient(mongoDBURL string) *mongo.Client {
	if client != nil {
		return client
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoDBURL)
	var err error
	client, err = mongo.Connect(ctx, clientOptions)

	// Assume the caller of this func cannot handle the case where there is no
	// database connection, so the service must crash here as it cannot do its work.
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	// Check we can connect to the mongodb instance. Failure here should result
	// in a crash.
	pingContext, pingCancel := context.WithDeadline(ctx, time.Now().Add(5*time.Second))
	defer pingCancel()
	err = client.Ping(pingContext, nil)
	if err != nil {
		log.Error(errors.New("ping to mongodb timed out. please check the connection to mongodb and that it is running"))
		os.Exit(1)
	}

	log.Info("connected to mongodb successfully")

	return client
}

// MongoDatabaseInterface is an interface that describes the mongodb driver
type MongoDatabaseInterface interface {
	Collection(name string, opts ...*options.CollectionOptions) *mongo.Collection
}

// MongoService is a MongoDB implementation of the DAO
type MongoService struct {
	db                  MongoDatabaseInterface
	CheckoutsCollection string
	DiscountsCollection string
	RecordsCollection   string
}

// NewDAO returns a new DAO using the provided config
func NewDAO(cfg *config.Config) *MongoService {
	database := getMongoDatabase(cfg.MongoDBURL, cfg.Database)
	return &MongoService{
		db:                  database,
		CheckoutsCollection: cfg.CheckoutsCollection,
		DiscountsCollection: cfg.DiscountsCollection,
		RecordsCollection:   cfg.RecordsCollection,
	}
}

// getMongoDatabase returns a handle to the configured database from the client
func getMongoDatabase(mongoDBURL, databaseName string) MongoDatabaseInterface {
	return getMongoClient(mongoDBURL).Database(databaseName)
}

// CreateCheckoutResource writes a new checkout resource to the DB
func (m *MongoService) CreateCheckoutResource(checkoutResource *models.CheckoutResourceDB) error {
	collection := m.db.Collection(m.CheckoutsCollection)
	_, err := collection.InsertOne(context.Background(), checkoutResource)
	return err
}

// GetCheckoutResource gets a checkout resource from the DB.
// If the checkout is not found, nil is returned with no error.
func (m *MongoService) GetCheckoutResource(id string) (*models.CheckoutResourceDB, error) {
	var resource models.CheckoutResourceDB

	collection := m.db.Collection(m.CheckoutsCollection)
	dbResource := collection.FindOne(context.Background(), bson.M{"_id": id})

	err := dbResource.Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	err = dbResource.Decode(&resource)
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// PatchCheckoutResource patches a checkout resource in the DB
func (m *MongoService) PatchCheckoutResource(id string, checkoutUpdate *models.CheckoutResourceDB) error {
	collection := m.db.Collection(m.CheckoutsCollection)

	patchUpdate := make(bson.M)

	// Patch only these fields
	if checkoutUpdate.Data.PaymentMethod != "" {
		patchUpdate["data.payment_method"] = checkoutUpdate.Data.PaymentMethod
	}
	if checkoutUpdate.Data.Status != "" {
		patchUpdate["data.status"] = checkoutUpdate.Data.Status
	}
	if !checkoutUpdate.Data.CompletedAt.IsZero() {
		patchUpdate["data.completed_at"] = checkoutUpdate.Data.CompletedAt
	}
	if checkoutUpdate.ExternalOrderID != "" {
		patchUpdate["external_order_id"] = checkoutUpdate.ExternalOrderID
	}
	if checkoutUpdate.ExternalTransactionID != "" {
		patchUpdate["external_transaction_id"] = checkoutUpdate.ExternalTransactionID
	}

	update := bson.M{"$set": patchUpdate}

	result, err := collection.UpdateOne(context.Background(), bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("not found")
	}

	return nil
}

// ApplyDiscountToCheckout conditionally stores a discounted amount against a
// checkout session. The filter rejects the write when a later apply attempt
// has already landed, so an older in-flight response cannot clobber it.
func (m *MongoService) ApplyDiscountToCheckout(id string, code string, amount string, attempt int) (bool, error) {
	collection := m.db.Collection(m.CheckoutsCollection)

	filter := bson.M{
		"_id":              id,
		"discount_attempt": bson.M{"$lt": attempt},
	}
	update := bson.M{"$set": bson.M{
		"data.amount":        amount,
		"data.discount_code": code,
		"discount_attempt":   attempt,
	}}

	result, err := collection.UpdateOne(context.Background(), filter, update)
	if err != nil {
		return false, err
	}
	if result.MatchedCount == 1 {
		return true, nil
	}

	// A miss is either a stale attempt or a session that does not exist
	err = collection.FindOne(context.Background(), bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return false, errors.New("not found")
	}
	if err != nil {
		return false, err
	}

	return false, nil
}

// GetDiscountCode gets a discount code from the DB.
// If the code is not found, nil is returned with no error.
func (m *MongoService) GetDiscountCode(code string) (*models.DiscountCodeDB, error) {
	var resource models.DiscountCodeDB

	collection := m.db.Collection(m.DiscountsCollection)
	dbResource := collection.FindOne(context.Background(), bson.M{"_id": code})

	err := dbResource.Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	err = dbResource.Decode(&resource)
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// CreatePaymentRecord writes a completed payment record to the DB
func (m *MongoService) CreatePaymentRecord(record *models.PaymentRecordDB) error {
	collection := m.db.Collection(m.RecordsCollection)
	_, err := collection.InsertOne(context.Background(), record)
	return err
}
