package api

// Question is a normalized quiz item as delivered to clients.
//
// Options carries every candidate answer including the correct one,
// in the order the source delivered them. Shuffling the display order
// is left to the presentation layer.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}
