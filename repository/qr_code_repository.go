package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Sistem-Manajemen-Restoran/config"
	"Sistem-Manajemen-Restoran/models"
)

type QRCodeRepository interface {
	CreateQRCode(ctx context.Context, qrCode *models.QRCode) (*mongo.InsertOneResult, error)
	FindQRCodeByValue(ctx context.Context, code string) (*models.QRCode, error)
	FindActiveQRCodeByDate(ctx context.Context, date string) (*models.QRCode, error)
	MarkQRCodeAsUsed(ctx context.Context, qrCodeID primitive.ObjectID, employeeID primitive.ObjectID) (*mongo.UpdateResult, error)
}

type qrCodeRepository struct {
	collection *mongo.Collection
}

func NewQRCodeRepository() QRCodeRepository {
	return &qrCodeRepository{
		collection: config.GetCollection(config.QRCodeCollection),
	}
}

func (r *qrCodeRepository) CreateQRCode(ctx context.Context, qrCode *models.QRCode) (*mongo.InsertOneResult, error) {
	res, err := r.collection.InsertOne(ctx, qrCode)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat QR Code: %w", err)
	}
	return res, nil
}

func (r *qrCodeRepository) FindQRCodeByValue(ctx context.Context, value string) (*models.QRCode, error) {
	var qrCode models.QRCode
	err := r.collection.FindOne(ctx, bson.M{"code": value}).Decode(&qrCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari QR Code: %w", err)
	}
	return &qrCode, nil
}

func (r *qrCodeRepository) FindActiveQRCodeByDate(ctx context.Context, date string) (*models.QRCode, error) {
	var qrCode models.QRCode

	filter := bson.M{
		"date":       date,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	err := r.collection.FindOne(ctx, filter, opts).Decode(&qrCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari QR Code aktif: %w", err)
	}
	return &qrCode, nil
}

func (r *qrCodeRepository) MarkQRCodeAsUsed(ctx context.Context, qrCodeID primitive.ObjectID, employeeID primitive.ObjectID) (*mongo.UpdateResult, error) {
	update := bson.M{
		"$addToSet": bson.M{"used_by": employeeID},
		"$set":      bson.M{"updated_at": time.Now()},
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": qrCodeID}, update)
	if err != nil {
		return nil, fmt.Errorf("gagal menandai QR Code sebagai sudah digunakan: %w", err)
	}
	return res, nil
}
