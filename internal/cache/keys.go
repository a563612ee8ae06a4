package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// keyVersion changes whenever extraction or tokenization output changes,
// so stale entries are never read back
const keyVersion = "1"

// PrefixBlocks prefixes keys of tokenized comment blocks
const PrefixBlocks = "blocks"

// GenerateKey hashes the parts into a hex SHA256 digest. Parts are
// separated by a NUL byte so ("ab", "c") and ("a", "bc") differ.
func GenerateKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// GenerateKeyWithPrefix generates a cache key with a prefix
func GenerateKeyWithPrefix(prefix string, parts ...string) string {
	return prefix + ":" + GenerateKey(parts...)
}

// BlocksKey identifies the tokenized blocks of text for one comment style
// and leading character
func BlocksKey(style, leadingCharacter, text string) string {
	return GenerateKeyWithPrefix(PrefixBlocks, keyVersion, style, leadingCharacter, text)
}
