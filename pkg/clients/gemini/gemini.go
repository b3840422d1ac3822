package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/genapagie/ovinpro/internal/domain/models"
)

const (
	baseURL = "https://generativelanguage.googleapis.com"
	model   = "gemini-2.0-flash"
)

// Client defines the vision analysis boundary. The implementation is a black
// box: it returns a partial measurement record or fails, and never persists
// anything.
type Client interface {
	AnalyzeSheepImage(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error)
}

type geminiClient struct {
	httpClient *resty.Client
	apiKey     string
}

// NewClient creates a configured Gemini vision client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &geminiClient{httpClient: client, apiKey: apiKey}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *geminiClient) AnalyzeSheepImage(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{MimeType: "image/jpeg", Data: req.ImageBase64}},
				{Text: buildPrompt(req)},
			},
		}},
	}

	var respBody generateResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", model))

	if err != nil {
		return nil, fmt.Errorf("gemini api call: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("gemini api error: %s", resp.String())
	}
	if len(respBody.Candidates) == 0 || len(respBody.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from ai")
	}

	return parseResult(respBody.Candidates[0].Content.Parts[0].Text)
}

// parseResult decodes the model's JSON reply, tolerating markdown code
// fences around it.
func parseResult(text string) (*models.AnalysisResult, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	text = strings.TrimSpace(text)

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ai response: %w. Response was: %s", err, text)
	}
	return &result, nil
}

func buildPrompt(req models.AnalysisRequest) string {
	var b strings.Builder

	b.WriteString("You are a zootechnical expert analyzing a photo of an Algerian sheep of breed ")
	b.WriteString(string(req.Breed))
	b.WriteString(".\n")

	switch req.ReferenceObject {
	case models.RefBottle:
		b.WriteString("A 1.5L water bottle (33 cm tall) is visible next to the animal; use it as the scale reference.\n")
	case models.RefCard:
		b.WriteString("A bank card (8.56 cm wide) is visible next to the animal; use it as the scale reference.\n")
	case models.RefStick:
		b.WriteString("A graduated 50 cm stick is visible next to the animal; use it as the scale reference.\n")
	default:
		b.WriteString("No reference object is present; estimate dimensions from the breed standard.\n")
	}

	var defs []models.TraitDef
	var key string
	if req.Mode == models.ModeMammary {
		defs = models.MammaryTraits
		key = "mammary_traits"
		b.WriteString("This is a rear shot for udder examination. Also estimate an overall mammary development score from 1 to 10 in \"mammary_score\".\n")
	} else {
		defs = models.MorphoTraits
		key = "measurements"
		b.WriteString("This is a profile shot for body morphometry. Also report the coat color in \"robe_couleur\".\n")
	}

	b.WriteString("Estimate the following traits and return them under the JSON key \"" + key + "\":\n")
	for _, def := range defs {
		if def.Kind == models.TraitNumeric {
			fmt.Fprintf(&b, "- %s (%s, number in %s)\n", def.ID, def.Label, def.Unit)
		} else {
			fmt.Fprintf(&b, "- %s (%s, one of: %s)\n", def.ID, def.Label, strings.Join(def.Allowed, ", "))
		}
	}

	b.WriteString(`Reply with ONLY a JSON object, no prose, shaped as:
{"` + key + `": {"trait_id": value, ...}, "mammary_score": 0, "robe_couleur": "", "feedback": "short note in French about visible strengths or defects"}
Omit any trait you cannot assess from the image.`)

	return b.String()
}
