package storage

import (
	"bytes"
	"image/jpeg"
	"net/http"
)

// compress re-encodes a JPEG at the given quality hint. Anything else, including
// an undecodable JPEG or a hint outside (0, 1), is returned unchanged.
func compress(data []byte, quality float64) []byte {
	if quality <= 0 || quality >= 1 {
		return data
	}
	if http.DetectContentType(data) != "image/jpeg" {
		return data
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	q := int(quality * 100)
	if q < 1 {
		q = 1
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
		return data
	}
	return buf.Bytes()
}
