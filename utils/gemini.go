package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Se9uencer/FitCheck/config"
)

const previewModel = "gemini-2.0-flash-exp"

// GeneratePreviewImage asks Gemini for a garment preview: the product images
// rendered on a mannequin matching the given body measurements. Returns the
// generated image bytes, or an error if the model produced no image part.
func GeneratePreviewImage(ctx context.Context, personDetails string, productImages []string) ([]byte, error) {
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(previewModel)

	prompt := fmt.Sprintf(`
Render the clothing from the product images on a neutral mannequin whose body
matches the measurements below. Keep the garment's color, pattern and
proportions exactly as shown; demonstrate how the fit would look at these
measurements.

Body measurements: %s
`, personDetails)

	parts := []genai.Part{genai.Text(prompt)}
	for _, url := range productImages {
		if url == "" {
			continue
		}
		data, err := fetchImage(ctx, url)
		if err != nil {
			continue
		}
		parts = append(parts, genai.ImageData("jpeg", data))
	}
	if len(parts) == 1 {
		return nil, fmt.Errorf("no product images could be fetched")
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok {
			return blob.Data, nil
		}
	}

	return nil, fmt.Errorf("model returned no image")
}

func fetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image, status: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
