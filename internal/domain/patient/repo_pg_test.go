package patient

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayush-2302/deploy-gro/internal/platform/phi"
)

func strPtr(s string) *string { return &s }

func newTestCipher(t *testing.T) *phi.Cipher {
	t.Helper()
	c, err := phi.NewCipher(strings.Repeat("ab", 32), zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestSealed_EncryptsPHIOnCopy(t *testing.T) {
	repo := &repoPG{cipher: newTestCipher(t)}
	p := &Patient{
		Name:             "Asha",
		Ward:             strPtr("W2"),
		MobileNo:         strPtr("9876543210"),
		AttenderMobileNo: strPtr("9123456780"),
		AadhaarNumber:    strPtr("1234 5678 9012"),
	}

	s, err := repo.sealed(p)
	require.NoError(t, err)
	for name, v := range map[string]*string{
		"mobile_no":          s.MobileNo,
		"attender_mobile_no": s.AttenderMobileNo,
		"aadhaar_number":     s.AadhaarNumber,
	} {
		require.NotNil(t, v, name)
		assert.True(t, strings.HasPrefix(*v, "enc:v1:"), "%s is encrypted", name)
	}
	assert.Equal(t, "W2", *s.Ward)
	assert.Equal(t, "Asha", s.Name)
	assert.Equal(t, "9876543210", *p.MobileNo, "caller's patient keeps plaintext")

	require.NoError(t, repo.open(s))
	assert.Equal(t, "1234 5678 9012", *s.AadhaarNumber)
	assert.Equal(t, "9123456780", *s.AttenderMobileNo)
}

func TestSealed_PassThroughWithoutKey(t *testing.T) {
	c, err := phi.NewCipher("", zerolog.Nop())
	require.NoError(t, err)
	for _, repo := range []*repoPG{{cipher: c}, {}} {
		s, err := repo.sealed(&Patient{MobileNo: strPtr("9876543210")})
		require.NoError(t, err)
		assert.Equal(t, "9876543210", *s.MobileNo)
		assert.Nil(t, s.AadhaarNumber)
	}
}

func TestOpen_EncryptedWithoutKey(t *testing.T) {
	s, err := (&repoPG{cipher: newTestCipher(t)}).sealed(&Patient{MobileNo: strPtr("9876543210")})
	require.NoError(t, err)
	assert.Error(t, (&repoPG{}).open(s), "ciphertext cannot be read without a key")
}
