package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Envelope represents an encrypted credential field at rest.
//
// The envelope is immutable once produced: rotation replaces it wholesale,
// decryption never mutates it. The IV is freshly random per encryption and the
// tag authenticates both the ciphertext and the field name the envelope was
// written for (bound as associated data).
//
// Fields:
//   - Ciphertext: the encrypted field value, tag stripped
//   - IV: the 12-byte random nonce used for this encryption
//   - Tag: the 16-byte authentication tag
//   - KeyVersion: keyset version used for this encryption
//   - EncryptedAt: UTC timestamp of the encryption call
type Envelope struct {
	Ciphertext  []byte
	IV          []byte
	Tag         []byte
	KeyVersion  uint
	EncryptedAt time.Time
}

// envelopeJSON is the persisted textual shape of an Envelope. The field names
// are a compatibility surface: historical rows written with earlier key
// versions must keep parsing.
type envelopeJSON struct {
	Data        string `json:"data"`
	IV          string `json:"iv"`
	Tag         string `json:"tag"`
	Version     uint   `json:"version"`
	EncryptedAt string `json:"encryptedAt"`
}

// ParseEnvelope creates an Envelope from its persisted string representation.
//
// The input must be a JSON object {"data","iv","tag","version","encryptedAt"}
// with base64-encoded binary fields and an RFC 3339 timestamp. Arbitrary
// garbage input yields an envelope parse error, never a panic: callers
// resolving a stored credential map any parse failure to "not found".
//
// Returns:
//   - ErrInvalidEnvelopeFormat if the text is not the expected JSON object or
//     the timestamp is not RFC 3339
//   - ErrInvalidEnvelopeBase64 if data, iv, or tag fail base64 decoding
//   - ErrInvalidEnvelopeIV if the decoded IV is not exactly 12 bytes
//   - ErrInvalidEnvelopeTag if the decoded tag is not exactly 16 bytes
func ParseEnvelope(content string) (Envelope, error) {
	var raw envelopeJSON
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidEnvelopeFormat, err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(raw.Data)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: data: %v", ErrInvalidEnvelopeBase64, err)
	}

	iv, err := base64.StdEncoding.DecodeString(raw.IV)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: iv: %v", ErrInvalidEnvelopeBase64, err)
	}
	if len(iv) != IVSize {
		return Envelope{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidEnvelopeIV, IVSize, len(iv))
	}

	tag, err := base64.StdEncoding.DecodeString(raw.Tag)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: tag: %v", ErrInvalidEnvelopeBase64, err)
	}
	if len(tag) != TagSize {
		return Envelope{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidEnvelopeTag, TagSize, len(tag))
	}

	encryptedAt, err := time.Parse(time.RFC3339Nano, raw.EncryptedAt)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: encryptedAt: %v", ErrInvalidEnvelopeFormat, err)
	}

	return Envelope{
		Ciphertext:  ciphertext,
		IV:          iv,
		Tag:         tag,
		KeyVersion:  raw.Version,
		EncryptedAt: encryptedAt,
	}, nil
}

// String serializes the Envelope to its persisted string representation.
//
// Round-trips with ParseEnvelope. The surrounding persistence layer stores
// the result as an opaque string column; nothing outside this package depends
// on the encoding.
func (e Envelope) String() string {
	raw := envelopeJSON{
		Data:        base64.StdEncoding.EncodeToString(e.Ciphertext),
		IV:          base64.StdEncoding.EncodeToString(e.IV),
		Tag:         base64.StdEncoding.EncodeToString(e.Tag),
		Version:     e.KeyVersion,
		EncryptedAt: e.EncryptedAt.UTC().Format(time.RFC3339Nano),
	}

	// Marshal of a flat string/uint struct cannot fail.
	out, _ := json.Marshal(raw)
	return string(out)
}
