package encoding

import (
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/chacha20poly1305"
)

// Sentinel errors returned by Decode.
var (
	ErrInvalidFormat    = errors.New("encoding: invalid format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: decryption failed")
)

// sigLen is the truncated HMAC-SHA256 length (128 bits).
const sigLen = 16

// Encoder turns state snapshots into URL-safe strings and back.
// It supports two modes:
//   - Signed (default): msgpack + HMAC signature - visible but tamper-proof
//   - Encrypted: XChaCha20-Poly1305 - fully opaque
//
// Values are serialized with msgpack, so struct fields are controlled with
// `msgpack:"..."` tags.
type Encoder struct {
	signKey []byte
	aead    cipher.AEAD
}

// NewEncoder creates an encoder from key. Keys of any length are accepted;
// separate signing and encryption keys are derived from it.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) == 0 {
		return nil, errors.New("encoding: empty key")
	}
	signKey := derive(key, "sign")
	aead, err := chacha20poly1305.NewX(derive(key, "seal"))
	if err != nil {
		return nil, fmt.Errorf("encoding: %w", err)
	}
	return &Encoder{signKey: signKey, aead: aead}, nil
}

func derive(key []byte, purpose string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte("hxhooks/" + purpose))
	return mac.Sum(nil)
}

// Encode serializes v. If sensitive is true the result is encrypted;
// otherwise it is signed.
func (e *Encoder) Encode(v any, sensitive bool) (string, error) {
	packed, err := msgpack.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding: marshal: %w", err)
	}
	if sensitive {
		return e.seal(packed)
	}
	return e.sign(packed), nil
}

// Decode reverses Encode into v, which must be a pointer. sensitive must
// match the mode used to encode.
func (e *Encoder) Decode(encoded string, sensitive bool, v any) error {
	var (
		packed []byte
		err    error
	)
	if sensitive {
		packed, err = e.open(encoded)
	} else {
		packed, err = e.verify(encoded)
	}
	if err != nil {
		return err
	}
	if err := msgpack.Unmarshal(packed, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}

// sign creates a signed (but visible) encoding: base64.signature
func (e *Encoder) sign(data []byte) string {
	mac := hmac.New(sha256.New, e.signKey)
	mac.Write(data)
	return base64.RawURLEncoding.EncodeToString(data) + "." +
		base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:sigLen])
}

func (e *Encoder) verify(encoded string) ([]byte, error) {
	body, sigPart, ok := strings.Cut(encoded, ".")
	if !ok {
		return nil, fmt.Errorf("%w: missing signature", ErrInvalidFormat)
	}
	data, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	mac := hmac.New(sha256.New, e.signKey)
	mac.Write(data)
	if !hmac.Equal(sig, mac.Sum(nil)[:sigLen]) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

// seal encrypts data with a random nonce prepended to the ciphertext.
func (e *Encoder) seal(data []byte) (string, error) {
	nonce := make([]byte, e.aead.NonceSize(), e.aead.NonceSize()+len(data)+e.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("encoding: nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(e.aead.Seal(nonce, nonce, data, nil)), nil
}

func (e *Encoder) open(encoded string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(raw) < e.aead.NonceSize()+e.aead.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryptFailed)
	}
	nonce, ciphertext := raw[:e.aead.NonceSize()], raw[e.aead.NonceSize():]
	data, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return data, nil
}
