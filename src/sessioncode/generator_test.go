package sessioncode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	t.Run("LengthAndAlphabet", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			code := Generate(CodeLength)
			assert.Len(t, code, CodeLength)
			assert.True(t, IsValid(code), "generated code must be valid: %s", code)
		}
	})

	t.Run("NoConfusableCharacters", func(t *testing.T) {
		// 0/O/1/I ถูกตัดออกจาก alphabet
		for i := 0; i < 200; i++ {
			code := Generate(CodeLength)
			assert.NotContains(t, code, "0")
			assert.NotContains(t, code, "O")
			assert.NotContains(t, code, "1")
			assert.NotContains(t, code, "I")
		}
	})

	t.Run("AlphabetDividesByteRange", func(t *testing.T) {
		// modulo mapping is only uniform because 256 % 32 == 0
		assert.Equal(t, 32, len(Alphabet))
		assert.Equal(t, 0, 256%len(Alphabet))
	})
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "AWD82X9L", Normalize("awd82x9l"))
	assert.Equal(t, "AWD82X9L", Normalize("  awd-82 x9l\t"))
	assert.Equal(t, "AWD82X9L", Normalize("AWD82X9L"))
	// ตัวอักษรนอก alphabet หายไปเฉยๆ ไม่ error
	assert.Equal(t, "ABC234", Normalize("a0b1ciIoO234"))
	assert.Equal(t, "", Normalize("0O1I!@#"))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("AWD82X9L"))
	assert.True(t, IsValid(strings.Repeat("Z", CodeLength)))

	assert.False(t, IsValid(""))
	assert.False(t, IsValid("AWD82X9"))   // สั้นไป
	assert.False(t, IsValid("AWD82X9LM")) // ยาวไป
	assert.False(t, IsValid("awd82x9l"))  // lowercase ต้อง Normalize ก่อน
	assert.False(t, IsValid("AWD82X0L"))  // มี 0
	assert.False(t, IsValid("AWD82XIL"))  // มี I
}
