package infra

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"

	"github.com/cockroachdb/errors"
)

// AESEncryptionService protects sensitive violation descriptions at rest with
// AES-256-GCM. Decrypt failures are surfaced as errors, never as partial or
// garbled plaintext.
type AESEncryptionService struct {
	aead cipher.AEAD
}

func NewAESEncryptionService(config EncryptionConfig) (*AESEncryptionService, error) {
	if len(config.Key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes")
	}

	block, err := aes.NewCipher(config.Key)
	if err != nil {
		return nil, errors.Wrap(err, "can't create AES cipher")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "can't create GCM mode")
	}
	return &AESEncryptionService{aead: aead}, nil
}

func (s *AESEncryptionService) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Wrap(err, "can't generate nonce")
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *AESEncryptionService) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < s.aead.NonceSize() {
		return nil, errors.New("ciphertext shorter than nonce")
	}
	nonce, sealed := ciphertext[:s.aead.NonceSize()], ciphertext[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, errors.Wrap(err, "authentication failed")
	}
	return plaintext, nil
}
