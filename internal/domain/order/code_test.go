package order_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Fulfillment-api/internal/domain/order"
)

var base36 = regexp.MustCompile(`^[0-9A-Z]+$`)

func TestGenerateCode_Determinista(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	id := "3f2b8c1e-9d4a-4e6b-8f1a-00000000ffff"

	a := order.GenerateCode(id, now)
	b := order.GenerateCode(id, now)
	assert.Equal(t, a, b)
	assert.Equal(t, "25-1EKF", a, "0x0000ffff = 65535 = 1EKF en base 36")
}

func TestGenerateCode_FormatoYSegmentoBase36(t *testing.T) {
	now := time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)
	code := order.GenerateCode("b5f0a2d4-6c1e-4a8b-9f3d-7e21c9a0b4f6", now)
	assert.True(t, order.IsValidCode(code), code)
	assert.Equal(t, "31-", code[:3])
	assert.Regexp(t, base36, code[3:])
}

func TestGenerateCode_MaximoUint32(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "25-1Z141Z3", order.GenerateCode("ffffffff", now))
}

func TestGenerateCode_ColaEnCeroDaCero(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "25-0", order.GenerateCode("aaaaaaaa-bbbb-cccc-dddd-eeee00000000", now))
}

func TestGenerateCode_AnioConCeroIzquierda(t *testing.T) {
	now := time.Date(2005, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "05-A", order.GenerateCode("0000000a", now))
}

func TestGenerateCode_IDNoHexCaeEnCero(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "25-0", order.GenerateCode("order-xyz!", now))
}

func TestNewCode_SinIdentificador(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := order.NewCode(now)
		assert.True(t, order.IsValidCode(code), code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45, "el sustituto aleatorio debe dar códigos prácticamente únicos")
}

func TestIsValidCode(t *testing.T) {
	assert.True(t, order.IsValidCode("25-0"))
	assert.True(t, order.IsValidCode("25-ABC123"))
	assert.False(t, order.IsValidCode("2025-ABC"))
	assert.False(t, order.IsValidCode("25-abc"))
	assert.False(t, order.IsValidCode("25-"))
	assert.False(t, order.IsValidCode(""))
}
