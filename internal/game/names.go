package game

import "math/rand/v2"

var (
	adjectives = []string{"Quick", "Bright", "Silent", "Swift", "Red", "Blue", "Green", "Ancient", "Brave", "Calm"}
	animals    = []string{"Fox", "Panda", "Tiger", "Lion", "Wolf", "Eagle", "Shark", "Cat", "Dog", "Bear"}
)

// GenerateName returns a random display name. Two connections may
// draw the same one; addressing never relies on names.
func GenerateName() string {
	adj := adjectives[rand.IntN(len(adjectives))]
	animal := animals[rand.IntN(len(animals))]
	return adj + " " + animal
}
