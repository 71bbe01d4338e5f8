// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"hash"
	"os"
	"syscall"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"
)

// sealedEnvelope is the at-rest encryption wrapper some producers put around
// a whole NDJSON blob: a PBKDF2 key-provider config plus AES-GCM ciphertext.
type sealedEnvelope struct {
	Meta struct {
		Key string `json:"key_provider.pbkdf2.mykey"`
	} `json:"meta"`
	EncryptedData string `json:"encrypted_data"`
}

// IsSealed reports whether data is a sealed envelope rather than plain NDJSON.
func IsSealed(data []byte) bool {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return false
	}
	_, ok := doc["encrypted_data"]
	return ok
}

// Unseal decrypts a sealed envelope using the provided passphrase.
func Unseal(data []byte, passphrase string) ([]byte, error) {
	var envelope sealedEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse sealed envelope: %w", err)
	}

	keyProviderConfig, err := base64.StdEncoding.DecodeString(envelope.Meta.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to decode key provider config: %w", err)
	}

	var kpConfig struct {
		Salt       string `json:"salt"`
		Iterations int    `json:"iterations"`
		HashFunc   string `json:"hash_function"`
		KeyLength  int    `json:"key_length"`
	}
	if err = json.Unmarshal(keyProviderConfig, &kpConfig); err != nil {
		return nil, fmt.Errorf("failed to parse key provider config: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(kpConfig.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	hashFunc := func() hash.Hash { return sha512.New() }
	if kpConfig.HashFunc == "sha256" {
		hashFunc = func() hash.Hash { return sha256.New() }
	}

	key := pbkdf2.Key(
		[]byte(passphrase),
		salt,
		kpConfig.Iterations,
		kpConfig.KeyLength,
		hashFunc,
	)

	return decrypt(envelope.EncryptedData, key)
}

// unsealIfNeeded passes plain blobs through untouched and decrypts sealed
// ones via the passphrase supplier.
func unsealIfNeeded(data []byte, passphrase func() (string, error)) (string, error) {
	if !IsSealed(data) {
		return string(data), nil
	}

	if passphrase == nil {
		return "", fmt.Errorf("input is sealed and no passphrase is available")
	}

	pass, err := passphrase()
	if err != nil {
		return "", err
	}

	plain, err := Unseal(data, pass)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}

	return string(plain), nil
}

// PromptPassphrase prompts interactively for a passphrase without echoing
// input.
func PromptPassphrase() (string, error) {
	fmt.Fprint(os.Stderr, "Enter passphrase: ")
	defer fmt.Fprintln(os.Stderr)

	password, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}

	return string(password), nil
}

func decrypt(encryptedData string, derivedKey []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	// Nonce rides in front of the ciphertext.
	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf(
			"ciphertext too short: expected at least %d bytes, got %d",
			nonceSize,
			len(ciphertext),
		)
	}

	nonce := ciphertext[:nonceSize]
	encrypted := ciphertext[nonceSize:]

	plaintext, err := aesGCM.Open(nil, nonce, encrypted, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	return plaintext, nil
}
