package order

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var codePattern = regexp.MustCompile(`^[0-9]{2}-[0-9A-Z]+$`)

// GenerateCode deriva el código corto "YY-XXXX" de una orden a partir de su ID y la fecha actual.
// YY: dos últimos dígitos del año. XXXX: últimos 8 caracteres hex del ID (sin guiones) en base 36.
// Es determinista y no usa contador; dos IDs distintos pueden colisionar dentro del mismo año.
func GenerateCode(id string, now time.Time) string {
	hex := strings.ReplaceAll(id, "-", "")
	if len(hex) > 8 {
		hex = hex[len(hex)-8:]
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		n = 0
	}
	return fmt.Sprintf("%02d-%s", now.Year()%100, strings.ToUpper(strconv.FormatUint(n, 36)))
}

// NewCode genera un código sin ID de orden (importación masiva): usa un UUIDv7
// (tiempo + aleatorio) como identificador sustituto y aplica el mismo pipeline.
func NewCode(now time.Time) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return GenerateCode(id.String(), now)
}

// IsValidCode valida el formato textual YY-XXXX.
func IsValidCode(code string) bool {
	return codePattern.MatchString(code)
}
