package googlegenai

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/camaradados/proptext"
)

var summarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"text_summary": {Type: genai.TypeString},
		"main_theme":   {Type: genai.TypeString},
		"entities": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"type":  {Type: genai.TypeString},
					"value": {Type: genai.TypeString},
				},
				Required: []string{"type", "value"},
			},
		},
		"sentiment": {Type: genai.TypeString, Enum: proptext.Sentiments},
		"ideology":  {Type: genai.TypeString, Enum: proptext.Ideologies},
	},
	Required: []string{"text_summary", "main_theme", "entities", "sentiment", "ideology"},
}

func topicSchema(topics []string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"topic": {Type: genai.TypeString, Enum: topics},
		},
		Required: []string{"topic"},
	}
}

type summaryResponse struct {
	TextSummary string `json:"text_summary"`
	MainTheme   string `json:"main_theme"`
	Entities    []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"entities"`
	Sentiment string `json:"sentiment"`
	Ideology  string `json:"ideology"`
}

type topicResponse struct {
	Topic string `json:"topic"`
}

func (a *Adapter) Summarize(ctx context.Context, text string) (proptext.Summary, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   summarySchema,
		SystemInstruction: genai.NewContentFromText(
			systemInstruction+fmt.Sprintf(summaryRules,
				strings.Join(proptext.Sentiments, ", "),
				strings.Join(proptext.Ideologies, ", "),
			),
			genai.RoleUser,
		),
	}

	raw, err := a.generate(ctx, fmt.Sprintf(summaryTemplate, text), config)
	if err != nil {
		return proptext.Summary{}, err
	}

	return parseSummary(raw)
}

func (a *Adapter) ClassifyTopic(ctx context.Context, text string, topics []string) (string, error) {
	if len(topics) == 0 {
		return "", fmt.Errorf("no topics to classify into")
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		ResponseSchema:    topicSchema(topics),
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}

	quoted := make([]string, 0, len(topics))
	for _, t := range topics {
		quoted = append(quoted, fmt.Sprintf("%q", t))
	}

	raw, err := a.generate(ctx, fmt.Sprintf(topicTemplate, strings.Join(quoted, ", "), text), config)
	if err != nil {
		return "", err
	}

	return parseTopic(raw, topics)
}

func (a *Adapter) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	resp, err := a.client.Models.GenerateContent(
		ctx,
		a.generativeModel,
		genai.Text(prompt),
		config,
	)
	if err != nil {
		return "", fmt.Errorf("calling generative model: %w", err)
	}
	if len(resp.Candidates) != 1 {
		return "", fmt.Errorf("got %v candidates, expected 1", len(resp.Candidates))
	}

	text := resp.Text()
	a.logger.Debug("genai response", zap.String("model", a.generativeModel), zap.Int("length", len(text)))

	return text, nil
}

func parseSummary(raw string) (proptext.Summary, error) {
	var resp summaryResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return proptext.Summary{}, fmt.Errorf("unmarshalling summary: %w", err)
	}

	summary := proptext.Summary{
		TextSummary: strings.TrimSpace(resp.TextSummary),
		MainTheme:   strings.TrimSpace(resp.MainTheme),
		Sentiment:   strings.ToLower(strings.TrimSpace(resp.Sentiment)),
		Ideology:    strings.ToLower(strings.TrimSpace(resp.Ideology)),
	}
	for _, e := range resp.Entities {
		entity := proptext.Entity{
			Type:  strings.TrimSpace(e.Type),
			Value: strings.TrimSpace(e.Value),
		}
		if entity.Type == "" || entity.Value == "" {
			continue
		}
		summary.Entities = append(summary.Entities, entity)
	}

	return summary, nil
}

func parseTopic(raw string, topics []string) (string, error) {
	var resp topicResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return "", fmt.Errorf("unmarshalling topic: %w", err)
	}

	topic := strings.TrimSpace(resp.Topic)
	if !slices.Contains(topics, topic) {
		return "", fmt.Errorf("model answered unknown topic %q", topic)
	}

	return topic, nil
}
