package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var MongoConn *mongo.Client

var DBName string = "manajemen-restoran-db"
var UserCollection string = "users"
var EmployeeCollection string = "employees"
var DepartmentCollection string = "departments"
var QRCodeCollection string = "qr_codes"
var CounterCollection string = "counters"

func MongoConnect(uri string, dbName string) {
	if uri == "" {
		log.Fatal("MONGOSTRING belum di setting di env. coba setting dulu")
	}
	if dbName != "" {
		DBName = dbName
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB!")
	MongoConn = client
}

func GetCollection(collectionName string) *mongo.Collection {
	if MongoConn == nil {
		log.Fatal("MongoDB untuk client tidak di inisialisasi. Panggil MongoConnect() first")
	}
	return MongoConn.Database(DBName).Collection(collectionName)
}

// InitDatabase membuat indeks yang dibutuhkan aplikasi.
func InitDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		EmployeeCollection: {
			{Keys: bson.D{{Key: "employee_code", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "department", Value: 1}, {Key: "is_active", Value: 1}}},
		},
		DepartmentCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		QRCodeCollection: {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(86400)},
		},
	}

	for name, models := range indexes {
		if _, err := GetCollection(name).Indexes().CreateMany(ctx, models); err != nil {
			log.Fatalf("Gagal membuat indeks untuk koleksi %s: %v", name, err)
		}
	}
	log.Println("Indeks database siap.")
}

func DisconnectDB() {
	if MongoConn != nil {
		if err := MongoConn.Disconnect(context.Background()); err != nil {
			log.Fatalf("Error disconnecting from MongoDB: %v", err)
		}
		log.Println("Disconnect from MongoDB")
	}
}
