package recs

// JSON shape (v1 contract, image variant):
// {
//   "watches": [
//     {
//       "brand": "string",
//       "name": "string",
//       "style": "string",
//       "reason": "string",
//       "imageUrl": "string"
//     }
//   ]
// }
//
// The imageUrl value is never trusted; the validator replaces it with a
// fixed placeholder reference.
type suggestionResponseV1 struct {
	Watches *[]suggestionV1 `json:"watches"`
}

type suggestionV1 struct {
	Brand    string `json:"brand"`
	Name     string `json:"name"`
	Style    string `json:"style"`
	Reason   string `json:"reason"`
	ImageURL string `json:"imageUrl"`
}
