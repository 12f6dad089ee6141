package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TryOn represents a generated garment preview for a measurement profile
type TryOn struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MeasurementID     string             `bson:"measurement_id" json:"measurement_id"`
	ProductURL        string             `bson:"product_url" json:"product_url"`
	ASIN              string             `bson:"asin,omitempty" json:"asin,omitempty"`
	GeneratedImageKey string             `bson:"generated_image_key" json:"generated_image_key"` // S3 object key
	Status            string             `bson:"status" json:"status"`                           // "completed" or "failed"
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}
