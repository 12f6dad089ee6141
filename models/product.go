package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SizeOption represents a single size option for a product
type SizeOption struct {
	Size      string `bson:"size" json:"size"`
	Available bool   `bson:"available" json:"available"`
	Price     string `bson:"price,omitempty" json:"price,omitempty"` // Price for this size if different
}

// Measurement represents a single measurement dimension in a size chart
type Measurement struct {
	Name  string  `bson:"name" json:"name"` // e.g. "chest", "length", "waist"
	Value float64 `bson:"value" json:"value"`
	Unit  string  `bson:"unit" json:"unit"` // defaults to "inches"
}

// SizeChartEntry represents a single row in a size chart
type SizeChartEntry struct {
	Size         string        `bson:"size" json:"size"`
	Measurements []Measurement `bson:"measurements" json:"measurements"`
}

// ProductInfo is the complete product record extracted from a product page.
// It is assembled once at the end of an extraction call and never mutated.
type ProductInfo struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	ASIN          string `bson:"asin,omitempty" json:"asin,omitempty"`
	Title         string `bson:"title" json:"title"`
	Brand         string `bson:"brand,omitempty" json:"brand,omitempty"`
	Price         string `bson:"price,omitempty" json:"price,omitempty"`
	OriginalPrice string `bson:"original_price,omitempty" json:"original_price,omitempty"`
	Currency      string `bson:"currency" json:"currency"`

	MainImage string   `bson:"main_image,omitempty" json:"main_image,omitempty"`
	Images    []string `bson:"images" json:"images"`

	AvailableSizes []SizeOption     `bson:"available_sizes" json:"available_sizes"`
	SizeChart      []SizeChartEntry `bson:"size_chart" json:"size_chart"` // user-entered downstream, never populated by extraction
	FitType        string           `bson:"fit_type,omitempty" json:"fit_type,omitempty"`

	Material string `bson:"material,omitempty" json:"material,omitempty"`

	Category     string `bson:"category,omitempty" json:"category,omitempty"`
	ClothingType string `bson:"clothing_type,omitempty" json:"clothing_type,omitempty"`
	Gender       string `bson:"gender,omitempty" json:"gender,omitempty"`

	Color           string   `bson:"color,omitempty" json:"color,omitempty"`
	AvailableColors []string `bson:"available_colors" json:"available_colors"`
	Features        []string `bson:"features" json:"features"`
	Description     string   `bson:"description,omitempty" json:"description,omitempty"`

	Rating      *float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	ReviewCount *int     `bson:"review_count,omitempty" json:"review_count,omitempty"`

	URL       string    `bson:"url" json:"url"`
	ScrapedAt string    `bson:"scraped_at,omitempty" json:"scraped_at,omitempty"`
	CreatedAt time.Time `bson:"created_at,omitempty" json:"-"`
}

// ExtractionRequest is the request body for POST /api/extract.
// The flags default to true when omitted.
type ExtractionRequest struct {
	URL              string `json:"url"`
	IncludeSizeChart *bool  `json:"include_size_chart,omitempty"`
	IncludeAllImages *bool  `json:"include_all_images,omitempty"`
}

// ExtractionResult is the tagged outcome of one extraction call: either a
// best-effort product with non-fatal warnings, or an error message.
type ExtractionResult struct {
	Success  bool         `json:"success"`
	Product  *ProductInfo `json:"product,omitempty"`
	Error    string       `json:"error,omitempty"`
	Warnings []string     `json:"warnings"`
}

// Failure builds a failed ExtractionResult with the given error message.
func Failure(msg string) ExtractionResult {
	return ExtractionResult{Success: false, Error: msg, Warnings: []string{}}
}
