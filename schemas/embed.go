// Package schemas embeds the JSON Schema documents that describe structured model output.
package schemas

import "embed"

// CareerRecommendation is the schema file for a CareerRecommendation object
const CareerRecommendation = "career_recommendation.schema.json"

// FS holds every *.schema.json file in this directory
//
//go:embed *.schema.json
var FS embed.FS
