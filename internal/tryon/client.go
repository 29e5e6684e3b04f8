package tryon

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini image model used when the request names none.
const DefaultModel = "gemini-3-pro-image-preview"

// DefaultPrompt instructs the model to transplant only the hairstyle.
const DefaultPrompt = "You are a pro stylist image editor. " +
	"Use the first image ONLY for hair reference. " +
	"Use the second image (selfie) as the base. The final face, skin tone, expression, body/pose, clothing, and background must match the selfie exactly. " +
	"Do NOT copy or replace the face from the reference. Ignore the reference face entirely, only take hair shape, length, texture, part, and color. " +
	"If the selfie is low quality, dim, cropped, or partially obstructed, clean it up: normalize lighting, remove noise, and infer any obscured hair naturally while keeping identity intact. " +
	"Do not alter identity or facial features. Only change the hair."

// GenerateRequest is one try-on generation.
type GenerateRequest struct {
	// Model overrides DefaultModel when set.
	Model string
	// Prompt overrides DefaultPrompt when set.
	Prompt    string
	Selfie    Image
	Reference Image
}

// ImageGenerator produces an edited selfie from a try-on request.
type ImageGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (Image, error)
}

// GeminiClient implements ImageGenerator using Google's Gemini API.
type GeminiClient struct {
	client  *genai.Client
	modelID string
}

// NewGeminiClient creates a Gemini-backed image generator.
func NewGeminiClient(ctx context.Context, apiKey, modelID string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("tryon: google api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("tryon: create gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelID: modelID}, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Generate sends the selfie and hairstyle reference to Gemini and returns the
// first image part of the response.
func (c *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (Image, error) {
	modelID := req.Model
	if modelID == "" {
		modelID = c.modelID
	}
	prompt := req.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	model := c.client.GenerativeModel(modelID)
	resp, err := model.GenerateContent(ctx,
		genai.Text(prompt),
		genai.Text("Client selfie (base for final image):"),
		genai.Blob{MIMEType: req.Selfie.MIMEType, Data: req.Selfie.Data},
		genai.Text("Hairstyle reference (hair only, ignore face/background):"),
		genai.Blob{MIMEType: req.Reference.MIMEType, Data: req.Reference.Data},
	)
	if err != nil {
		return Image{}, fmt.Errorf("tryon: gemini generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Image{}, errors.New("tryon: gemini returned no candidates")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
			return Image{MIMEType: blob.MIMEType, Data: blob.Data}, nil
		}
	}
	return Image{}, errors.New("tryon: gemini response contained no image")
}
