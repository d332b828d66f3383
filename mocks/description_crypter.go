package mocks

import (
	"github.com/stretchr/testify/mock"
)

type DescriptionCrypter struct {
	mock.Mock
}

func (c *DescriptionCrypter) Encrypt(plaintext []byte) ([]byte, error) {
	args := c.Called(plaintext)
	return args.Get(0).([]byte), args.Error(1)
}

func (c *DescriptionCrypter) Decrypt(ciphertext []byte) ([]byte, error) {
	args := c.Called(ciphertext)
	return args.Get(0).([]byte), args.Error(1)
}
