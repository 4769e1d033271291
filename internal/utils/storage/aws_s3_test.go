package storage

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestDecodeDataURI(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4E, 0x47}
	dataURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	mediaType, data, err := decodeDataURI(dataURI)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mediaType != "image/png" {
		t.Fatalf("media type mismatch: %s", mediaType)
	}
	if string(data) != string(payload) {
		t.Fatalf("payload mismatch: %v", data)
	}
}

func TestDecodeDataURIRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"image/png;base64,aGk=",
		"data:image/png,aGk=",
		"data:image/png;base64,???",
	}
	for _, input := range cases {
		if _, _, err := decodeDataURI(input); !errors.Is(err, ErrInvalidDataURI) {
			t.Fatalf("input %q: expected ErrInvalidDataURI, got %v", input, err)
		}
	}
}

func TestExtensionForMediaType(t *testing.T) {
	if ext := extensionFor("image/jpeg"); ext != ".jpg" {
		t.Fatalf("jpeg extension: %s", ext)
	}
	if ext := extensionFor("image/png"); ext != ".png" {
		t.Fatalf("png extension: %s", ext)
	}
	if ext := extensionFor("application/pdf"); ext != "" {
		t.Fatalf("unknown media type must map to empty extension, got %s", ext)
	}
	if allowed(extensionFor("application/pdf"), AllowImage) {
		t.Fatalf("pdf must not pass the image allow list")
	}
}
