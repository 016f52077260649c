package recs

// JSON shape (quiz contract):
// {
//   "suggestedWatches": "comma separated list of brand and model names",
//   "reasoning": "string"
// }
//
// Pointer fields distinguish a missing key from an empty string.
type quizResponse struct {
	SuggestedWatches *string `json:"suggestedWatches"`
	Reasoning        *string `json:"reasoning"`
}
