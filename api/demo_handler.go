package api

import (
	"net/http"

	"github.com/Se9uencer/FitCheck/models"
	"github.com/Se9uencer/FitCheck/utils"
)

// DemoProduct returns a hand-authored fixture product for testing the
// frontend without scraping. It bypasses the pipeline entirely.
func (h *Handler) DemoProduct(w http.ResponseWriter, r *http.Request) {
	rating := 4.5
	reviewCount := 2847

	product := models.ProductInfo{
		ASIN:          "B0DEMO1234",
		Title:         "Men's Classic Fit Cotton T-Shirt - Premium Quality Crew Neck Tee",
		Brand:         "FitCheck Demo Brand",
		Price:         "$29.99",
		OriginalPrice: "$39.99",
		Currency:      "USD",
		MainImage:     "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500",
		Images: []string{
			"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500",
			"https://images.unsplash.com/photo-1618354691373-d851c5c3a990?w=500",
		},
		AvailableSizes: []models.SizeOption{
			{Size: "S", Available: true},
			{Size: "M", Available: true},
			{Size: "L", Available: true},
			{Size: "XL", Available: true},
			{Size: "XXL", Available: false},
		},
		SizeChart: []models.SizeChartEntry{
			{Size: "S", Measurements: []models.Measurement{
				{Name: "chest", Value: 36, Unit: "inches"},
				{Name: "length", Value: 27, Unit: "inches"},
				{Name: "sleeve", Value: 8, Unit: "inches"},
			}},
			{Size: "M", Measurements: []models.Measurement{
				{Name: "chest", Value: 38, Unit: "inches"},
				{Name: "length", Value: 28, Unit: "inches"},
				{Name: "sleeve", Value: 8.5, Unit: "inches"},
			}},
			{Size: "L", Measurements: []models.Measurement{
				{Name: "chest", Value: 41, Unit: "inches"},
				{Name: "length", Value: 29, Unit: "inches"},
				{Name: "sleeve", Value: 9, Unit: "inches"},
			}},
			{Size: "XL", Measurements: []models.Measurement{
				{Name: "chest", Value: 44, Unit: "inches"},
				{Name: "length", Value: 30, Unit: "inches"},
				{Name: "sleeve", Value: 9.5, Unit: "inches"},
			}},
		},
		Material:     "100% Premium Cotton, 180 GSM",
		FitType:      "Classic Fit",
		ClothingType: "shirt",
		Gender:       "men",
		Color:        "Navy Blue",
		AvailableColors: []string{
			"Navy Blue", "Black", "White", "Heather Gray", "Forest Green",
		},
		Features: []string{
			"100% Premium Combed Cotton for ultimate softness",
			"Pre-shrunk fabric maintains size after washing",
			"Reinforced shoulder seams for durability",
			"Tagless design for comfort",
			"Classic crew neck fit",
		},
		Description: "Experience comfort like never before with our Premium Classic Fit T-Shirt. Made from 100% combed cotton, this tee offers exceptional softness while maintaining durability.",
		Rating:      &rating,
		ReviewCount: &reviewCount,
		URL:         "https://www.amazon.com/dp/B0DEMO1234",
	}

	utils.RespondJSON(w, http.StatusOK, product)
}
