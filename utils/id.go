package utils

import (
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// ISOLayout is the millisecond-precision UTC layout used for every stored timestamp.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// NewID returns "id-<unix millis>-<6 random base36 chars>". Collisions against existing
// records are not checked.
func NewID() (string, error) {
	return newIDAt(time.Now())
}

func newIDAt(t time.Time) (string, error) {
	suffix, err := gonanoid.Generate(idAlphabet, 6)
	if err != nil {
		return "", err
	}
	return "id-" + strconv.FormatInt(t.UnixMilli(), 10) + "-" + suffix, nil
}

func ISOTime(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

func NowISO() string {
	return ISOTime(time.Now())
}
