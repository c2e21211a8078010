package viewmodel

// BreedCandidate is one ranked guess of a breed prediction.
type BreedCandidate struct {
	Breed      string  `json:"breed"`
	Confidence float64 `json:"confidence"`
}

// BreedPrediction is the body of a successful breed prediction.
type BreedPrediction struct {
	Success     bool             `json:"success"`
	Breed       string           `json:"breed"`
	Confidence  float64          `json:"confidence"`
	Predictions []BreedCandidate `json:"predictions,omitempty"`
}

// BreedingPrediction is the body of a successful breeding prediction.
type BreedingPrediction struct {
	Success         bool     `json:"success"`
	Parent1Breed    string   `json:"parent1Breed"`
	Parent2Breed    string   `json:"parent2Breed"`
	OffspringImage  string   `json:"offspringImage,omitempty"`
	OffspringTraits []string `json:"offspringTraits,omitempty"`
}
