package openai

import (
	"fmt"
	"strings"

	"github.com/nexa-app/nexa/internal/domain/recommend"
)

const describeSystemPrompt = `You are an AI assistant for a second-hand marketplace app.

The user uploads an image of an item they want to sell.

Your task:
1. Analyze the image carefully.
2. Detect the main object being sold.
3. Generate a single realistic listing.

Rules:
- This can be any object: car, phone, furniture, food, tools, decoration, etc.
- Assume the seller is a normal person.
- Write in natural, human language.
- Do NOT invent technical specs you cannot see.
- Category must be one of:
  Vehicles, Electronics, Home, Furniture, Tools, Fashion, Services, Other

Return ONLY valid JSON in exactly this structure:

{
  "title": "",
  "description": "",
  "category": "",
  "tags": [],
  "priceMin": 0,
  "priceMax": 0,
  "confidenceScore": 0.0
}

Guidelines for fields:
- title: short and catchy marketplace title
- description: 2-4 natural sentences, like real user listings
- tags: 5-10 relevant keywords
- priceMin/priceMax: rough estimated range (if unknown use 0)
- confidenceScore: how confident you are about detection (0.7-1.0)`

const describeUserText = "Analyze this product image:"

func suggestPrompt(p recommend.Prompt) string {
	return fmt.Sprintf(`Generate personalized recommendations for a user based on:
- Location: %s
- Interests: %s
- Time context: %s

Return a JSON array of 3-5 recommended items with:
- contentType: 'Listing' or 'Event'
- title: item title
- description: brief description
- category: relevant category
- relevanceScore: 0.0-1.0

Return ONLY valid JSON array, no other text.`,
		p.Location(), strings.Join(p.Interests, ", "), p.TimeContext)
}
