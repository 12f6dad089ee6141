package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mannequin generation states for a measurement profile.
const (
	MannequinPending   = "pending"
	MannequinGenerated = "generated"
)

// UserMeasurement represents a body measurement profile used for mannequin
// generation and garment fitting. All lengths are in centimeters.
type UserMeasurement struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Gender   string             `bson:"gender" json:"gender"` // "men", "women" or "neutral"
	HeightCm float64            `bson:"height_cm" json:"height_cm"`
	ChestCm  float64            `bson:"chest_cm,omitempty" json:"chest_cm,omitempty"`
	WaistCm  float64            `bson:"waist_cm,omitempty" json:"waist_cm,omitempty"`
	HipsCm   float64            `bson:"hips_cm,omitempty" json:"hips_cm,omitempty"`
	ArmCm    float64            `bson:"arm_cm,omitempty" json:"arm_cm,omitempty"`
	LegCm    float64            `bson:"leg_cm,omitempty" json:"leg_cm,omitempty"`
	BicepCm  float64            `bson:"bicep_cm,omitempty" json:"bicep_cm,omitempty"`
	ThighCm  float64            `bson:"thigh_cm,omitempty" json:"thigh_cm,omitempty"`

	MannequinStatus string     `bson:"mannequin_status" json:"mannequin_status"`
	MannequinKey    string     `bson:"mannequin_key,omitempty" json:"mannequin_key,omitempty"` // S3 object key of the generated GLB
	LastGeneratedAt *time.Time `bson:"last_generated_at,omitempty" json:"last_generated_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
