package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"biztime/models"
)

type MongoInvoiceRepo struct {
	DB *mongo.Database
}

func NewMongoInvoiceRepo(db *mongo.Database) *MongoInvoiceRepo {
	return &MongoInvoiceRepo{DB: db}
}

func (r *MongoInvoiceRepo) ListInvoices(ctx context.Context) ([]models.InvoiceSummary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.DB.Collection(invoicesCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.InvoiceSummary{}
	for cur.Next(ctx) {
		var inv models.Invoice
		if err := cur.Decode(&inv); err != nil {
			return nil, err
		}
		out = append(out, models.InvoiceSummary{ID: inv.ID, CompCode: inv.CompCode})
	}
	return out, cur.Err()
}

func (r *MongoInvoiceRepo) ListInvoiceIDs(ctx context.Context, compCode string) ([]int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.DB.Collection(invoicesCollection).Find(ctx, bson.M{"comp_code": compCode}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := []int64{}
	for cur.Next(ctx) {
		var doc struct {
			ID int64 `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

func (r *MongoInvoiceRepo) GetInvoice(ctx context.Context, id int64) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.DB.Collection(invoicesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, invoiceNotFound(id)
		}
		return nil, err
	}
	return &inv, nil
}

// nextInvoiceID emulates a serial column with a counters document.
func (r *MongoInvoiceRepo) nextInvoiceID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.DB.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": invoicesCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next invoice id: %w", err)
	}
	return counter.Seq, nil
}

func (r *MongoInvoiceRepo) CreateInvoice(ctx context.Context, compCode string, amt float64) (*models.Invoice, error) {
	if amt <= 0 {
		return nil, fmt.Errorf("%w: amt must be positive", ErrConstraint)
	}
	n, err := r.DB.Collection(companiesCollection).CountDocuments(ctx, bson.M{"_id": compCode})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: company %q does not exist", ErrConstraint, compCode)
	}

	id, err := r.nextInvoiceID(ctx)
	if err != nil {
		return nil, err
	}
	inv := &models.Invoice{ID: id, CompCode: compCode, Amt: amt, AddDate: today()}
	if _, err := r.DB.Collection(invoicesCollection).InsertOne(ctx, inv); err != nil {
		return nil, classifyMongo(err)
	}
	return inv, nil
}

func (r *MongoInvoiceRepo) DecrementAmount(ctx context.Context, id int64, delta float64) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.DB.Collection(invoicesCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "amt": bson.M{"$gt": delta}},
		bson.M{"$inc": bson.M{"amt": -delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&inv)
	if err == nil {
		return &inv, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	// Either the invoice is missing or the result would break amt > 0.
	if _, getErr := r.GetInvoice(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("%w: amt must be positive", ErrConstraint)
}

func (r *MongoInvoiceRepo) DeleteInvoice(ctx context.Context, id int64) error {
	res, err := r.DB.Collection(invoicesCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return invoiceNotFound(id)
	}
	return nil
}
