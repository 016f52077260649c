package recs

// JSON shape (v2 contract, purchase-URL variant):
// {
//   "watches": [
//     {
//       "brand": "string",
//       "name": "string",
//       "style": "string",
//       "reason": "string",
//       "purchaseUrl": "string"
//     }
//   ]
// }
type suggestionResponseV2 struct {
	Watches *[]suggestionV2 `json:"watches"`
}

type suggestionV2 struct {
	Brand       string `json:"brand"`
	Name        string `json:"name"`
	Style       string `json:"style"`
	Reason      string `json:"reason"`
	PurchaseURL string `json:"purchaseUrl"`
}
