package config

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// EncryptionKeyEnv names the environment variable holding the config secret.
const EncryptionKeyEnv = "TAGSIGHT_CONFIG_KEY"

const defaultEncryptionKey = "change-this-config-key"

// scrypt parameters chosen to match the legacy terminal builds so existing
// encrypted config files stay readable.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
)

var scryptSalt = []byte("salt")

// ErrUnreadableConfig indicates the config file exists but cannot be
// decrypted or parsed.
var ErrUnreadableConfig = errors.New("config file unreadable")

func encryptionSecret() string {
	if v := strings.TrimSpace(os.Getenv(EncryptionKeyEnv)); v != "" {
		return v
	}
	return defaultEncryptionKey
}

func deriveKey(secret string) ([]byte, error) {
	key, err := scrypt.Key([]byte(secret), scryptSalt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("derive config key: %w", err)
	}
	return key, nil
}

// encrypt seals plaintext as hex(iv):hex(ciphertext), the framing the
// original terminal used.
func encrypt(plaintext []byte, secret string) (string, error) {
	key, err := deriveKey(secret)
	if err != nil {
		return "", err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("init cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	padded := padPKCS7(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

func decrypt(sealed string, secret string) ([]byte, error) {
	parts := strings.SplitN(strings.TrimSpace(sealed), ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: missing iv separator", ErrUnreadableConfig)
	}
	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: bad iv", ErrUnreadableConfig)
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: bad ciphertext", ErrUnreadableConfig)
	}

	key, err := deriveKey(secret)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := unpadPKCS7(plaintext, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableConfig, err)
	}
	return unpadded, nil
}

func padPKCS7(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func unpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padding], nil
}
