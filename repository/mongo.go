package repository

import (
	"context"
	"errors"

	"github.com/kdcreatives/kdcreatives-backend/database"
	"github.com/kdcreatives/kdcreatives-backend/models"
	"github.com/kdcreatives/kdcreatives-backend/services"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoQuotationStore implements services.QuotationStore over a single
// quotations collection. Mongo serializes writes per document, which is
// all the concurrency control the lifecycle manager asks for.
type MongoQuotationStore struct {
	col *mongo.Collection
}

func NewQuotationStore() *MongoQuotationStore {
	return &MongoQuotationStore{col: database.OpenCollection("quotations")}
}

func (s *MongoQuotationStore) Insert(ctx context.Context, q *models.QuotationRequest) error {
	_, err := s.col.InsertOne(ctx, q)
	return err
}

func (s *MongoQuotationStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.QuotationRequest, error) {
	var q models.QuotationRequest
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &services.NotFoundError{Resource: "quotation"}
		}
		return nil, err
	}
	return &q, nil
}

func (s *MongoQuotationStore) FindByClient(ctx context.Context, clientID bson.ObjectID) ([]models.QuotationRequest, error) {
	filter := bson.M{
		"requester.kind":     models.RequesterKindClient,
		"requester.clientId": clientID,
	}
	return s.find(ctx, filter)
}

func (s *MongoQuotationStore) FindAll(ctx context.Context) ([]models.QuotationRequest, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoQuotationStore) find(ctx context.Context, filter bson.M) ([]models.QuotationRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateRequested", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	quotations := make([]models.QuotationRequest, 0)
	for cursor.Next(ctx) {
		var q models.QuotationRequest
		if err := cursor.Decode(&q); err != nil {
			return nil, err
		}
		quotations = append(quotations, q)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return quotations, nil
}

func (s *MongoQuotationStore) Replace(ctx context.Context, q *models.QuotationRequest) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": q.ID}, q)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &services.NotFoundError{Resource: "quotation"}
	}
	return nil
}

func (s *MongoQuotationStore) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return &services.NotFoundError{Resource: "quotation"}
	}
	return nil
}

// MongoCatalog implements services.Catalog over the services collection.
type MongoCatalog struct {
	col *mongo.Collection
}

func NewCatalog() *MongoCatalog {
	return &MongoCatalog{col: database.OpenCollection("services")}
}

func (c *MongoCatalog) Resolve(ctx context.Context, id bson.ObjectID) (*models.Service, error) {
	var svc models.Service
	if err := c.col.FindOne(ctx, bson.M{"_id": id}).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &services.NotFoundError{Resource: "service"}
		}
		return nil, err
	}
	return &svc, nil
}

// MongoUserDirectory implements services.UserDirectory for the notifier.
type MongoUserDirectory struct {
	col *mongo.Collection
}

func NewUserDirectory() *MongoUserDirectory {
	return &MongoUserDirectory{col: database.OpenCollection("users")}
}

func (d *MongoUserDirectory) FindUser(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var user models.User
	if err := d.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &services.NotFoundError{Resource: "user"}
		}
		return nil, err
	}
	return &user, nil
}
