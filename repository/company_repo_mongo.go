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

const (
	companiesCollection = "companies"
	invoicesCollection  = "invoices"
	countersCollection  = "counters"
)

// InitMongoIndexes creates the unique company name index and the
// invoice comp_code index.
func InitMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(companiesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create companies index: %w", err)
	}
	_, err = db.Collection(invoicesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "comp_code", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create invoices index: %w", err)
	}
	return nil
}

type MongoCompanyRepo struct {
	DB *mongo.Database
}

func NewMongoCompanyRepo(db *mongo.Database) *MongoCompanyRepo {
	return &MongoCompanyRepo{DB: db}
}

func classifyMongo(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

func (r *MongoCompanyRepo) ListCompanies(ctx context.Context) ([]models.CompanySummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.D{{Key: "name", Value: 1}})
	cur, err := r.DB.Collection(companiesCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.CompanySummary{}
	for cur.Next(ctx) {
		var c models.Company
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, models.CompanySummary{Code: c.Code, Name: c.Name})
	}
	return out, cur.Err()
}

func (r *MongoCompanyRepo) GetCompany(ctx context.Context, code string) (*models.Company, error) {
	var c models.Company
	err := r.DB.Collection(companiesCollection).FindOne(ctx, bson.M{"_id": code}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, companyNotFound(code)
		}
		return nil, err
	}
	return &c, nil
}

func (r *MongoCompanyRepo) CreateCompany(ctx context.Context, in *models.CompanyInput) (*models.Company, error) {
	if in.Code == nil {
		return nil, fmt.Errorf("%w: null value in column \"code\"", ErrConstraint)
	}
	if in.Name == nil {
		return nil, fmt.Errorf("%w: null value in column \"name\"", ErrConstraint)
	}
	c := &models.Company{Code: *in.Code, Name: *in.Name, Description: in.Description}
	if _, err := r.DB.Collection(companiesCollection).InsertOne(ctx, c); err != nil {
		return nil, classifyMongo(err)
	}
	return c, nil
}

func (r *MongoCompanyRepo) UpdateCompany(ctx context.Context, code string, in *models.CompanyInput) (*models.Company, error) {
	if in.Name == nil {
		if _, err := r.GetCompany(ctx, code); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: null value in column \"name\"", ErrConstraint)
	}
	res, err := r.DB.Collection(companiesCollection).UpdateOne(ctx,
		bson.M{"_id": code},
		bson.M{"$set": bson.M{"name": *in.Name, "description": in.Description}},
	)
	if err != nil {
		return nil, classifyMongo(err)
	}
	if res.MatchedCount == 0 {
		return nil, companyNotFound(code)
	}
	return &models.Company{Code: code, Name: *in.Name, Description: in.Description}, nil
}

// DeleteCompany removes the company and cascades to its invoices.
func (r *MongoCompanyRepo) DeleteCompany(ctx context.Context, code string) error {
	res, err := r.DB.Collection(companiesCollection).DeleteOne(ctx, bson.M{"_id": code})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return companyNotFound(code)
	}
	_, err = r.DB.Collection(invoicesCollection).DeleteMany(ctx, bson.M{"comp_code": code})
	return err
}
