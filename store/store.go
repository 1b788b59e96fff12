// Package store holds the persistence layer: one store per entity,
// each an explicit handle around the shared gorm connection that gets
// constructed at startup and passed down
package store

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idLength  = 16
)

func newID() (string, error) {
	return gonanoid.Generate(idCharset, idLength)
}
