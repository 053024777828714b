// Package verify derives a human-checkable verification label from
// entropy: the Ethereum address of the first standard account
// (m/44'/60'/0'/0/0) for the mnemonic that entropy encodes.
//
// The label lets a user eyeball that a reconstruction produced the
// intended secret. It is informational only and never gates success.
package verify

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/tyler-smith/go-bip32"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/sha3"

	"github.com/interstellar-vault/interstellar/internal/mnemonic"
	"github.com/interstellar-vault/interstellar/pkg/wordlist"
)

// BIP-44 path components for the first Ethereum account.
const (
	purposeBIP44 = bip32.FirstHardenedChild + 44
	coinTypeEth  = bip32.FirstHardenedChild + 60
)

// seedIterations and seedSize follow BIP-39 seed derivation
// (PBKDF2-HMAC-SHA512, 2048 rounds, 512-bit output).
const (
	seedIterations = 2048
	seedSize       = 64
)

// Address returns the EIP-55 checksummed Ethereum address derived from
// entropy. Deterministic: identical entropy always yields the identical
// address.
func Address(dict *wordlist.Dictionary, entropy []byte) (string, error) {
	words, err := mnemonic.Encode(dict, entropy)
	if err != nil {
		return "", fmt.Errorf("verify: encode mnemonic: %w", err)
	}

	seed := pbkdf2.Key([]byte(strings.Join(words, " ")), []byte("mnemonic"), seedIterations, seedSize, sha512.New)

	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return "", fmt.Errorf("verify: master key: %w", err)
	}
	key := master
	for _, idx := range []uint32{purposeBIP44, coinTypeEth, bip32.FirstHardenedChild, 0, 0} {
		key, err = key.NewChildKey(idx)
		if err != nil {
			return "", fmt.Errorf("verify: derive child %d: %w", idx, err)
		}
	}

	pub, err := secp256k1.ParsePubKey(key.PublicKey().Key)
	if err != nil {
		return "", fmt.Errorf("verify: parse public key: %w", err)
	}

	// Ethereum addresses hash the uncompressed point without the 0x04
	// prefix: keccak256(X || Y)[12:].
	uncompressed := pub.SerializeUncompressed()
	h := sha3.NewLegacyKeccak256()
	h.Write(uncompressed[1:])
	digest := h.Sum(nil)

	return checksumAddress(digest[12:]), nil
}

// checksumAddress applies EIP-55 mixed-case checksumming to a 20-byte
// address.
func checksumAddress(addr []byte) string {
	lower := hex.EncodeToString(addr)

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	digest := h.Sum(nil)

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		if digest[i/2]>>(4-4*uint(i%2))&0x0F >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(out)
}
