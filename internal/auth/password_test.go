package auth

import (
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHashParams keeps the argon2id work factor low so the suite stays fast.
var testHashParams = &argon2id.Params{
	Memory:      16 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestHasherRoundTrip(t *testing.T) {
	hasher := NewHasher(testHashParams)

	passwords := []string{"Sup3rSecret!", "", "pässwörd", "a"}

	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		require.NoError(t, err)

		assert.True(t, hasher.Verify(password, hash), "password %q should verify against its own hash", password)
	}
}

func TestHasherRejectsWrongPassword(t *testing.T) {
	hasher := NewHasher(testHashParams)

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.False(t, hasher.Verify("correct horse battery stapl", hash))
	assert.False(t, hasher.Verify("", hash))
}

func TestHasherSaltsHashes(t *testing.T) {
	hasher := NewHasher(testHashParams)

	first, err := hasher.Hash("same password")
	require.NoError(t, err)

	second, err := hasher.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same password must differ by salt")
}

func TestHasherMalformedHash(t *testing.T) {
	hasher := NewHasher(nil)

	testCases := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "not a hash", hash: "plaintext"},
		{name: "truncated", hash: "$argon2id$v=19$m=65536"},
		{name: "wrong algorithm", hash: "$2a$10$abcdefghijklmnopqrstuv"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, hasher.Verify("anything", tc.hash))
		})
	}
}
