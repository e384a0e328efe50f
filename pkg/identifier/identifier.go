// Package identifier gera e interpreta os identificadores dos registros.
//
// Registros novos usam o formato estruturado "<PREFIXO>-<TIMESTAMP>-<ALEATORIO>",
// por exemplo "DEV-1728913200000-k3j9x0qa". Registros antigos carregam um
// identificador simples, sem separador, que continua válido como chave primária
// mas não participa da validação por tipo.
package identifier

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// EntityType identifica a coleção dona do registro
type EntityType string

const (
	Device   EntityType = "device"
	Customer EntityType = "customer"
	Sale     EntityType = "sale"
	Expense  EntityType = "expense"
	Supplier EntityType = "supplier"
)

// Kind distingue identificadores estruturados dos legados
type Kind int

const (
	KindLegacy Kind = iota
	KindStructured
)

const (
	separator    = "-"
	randomLength = 8
	alphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var prefixes = map[EntityType]string{
	Device:   "DEV",
	Customer: "CLI",
	Sale:     "SAL",
	Expense:  "EXP",
	Supplier: "FOR",
}

var typesByPrefix = func() map[string]EntityType {
	out := make(map[string]EntityType, len(prefixes))
	for t, p := range prefixes {
		out[p] = t
	}
	return out
}()

// ID é a forma normalizada de um identificador
type ID struct {
	Kind      Kind
	Type      EntityType
	Timestamp int64
	Random    string
	Raw       string
}

// IsStructured indica se o identificador segue o formato com prefixo
func (id ID) IsStructured() bool {
	return id.Kind == KindStructured
}

// Time retorna o instante embutido no identificador estruturado
func (id ID) Time() time.Time {
	if id.Kind != KindStructured {
		return time.Time{}
	}
	return time.UnixMilli(id.Timestamp)
}

func (id ID) String() string {
	return id.Raw
}

// Prefix retorna o prefixo de três letras do tipo
func Prefix(t EntityType) (string, bool) {
	p, ok := prefixes[t]
	return p, ok
}

// Generate produz um novo identificador estruturado para o tipo.
// A unicidade depende da entropia de timestamp+aleatório; não há
// verificação de colisão contra os registros existentes.
func Generate(t EntityType) string {
	return GenerateAt(t, time.Now())
}

// GenerateAt produz um identificador estruturado com o instante informado
func GenerateAt(t EntityType, at time.Time) string {
	prefix, ok := prefixes[t]
	if !ok {
		prefix = strings.ToUpper(string(t))
	}
	return prefix + separator + strconv.FormatInt(at.UnixMilli(), 10) + separator + randomString(randomLength)
}

// GenerateLegacy produz um identificador no formato antigo (timestamp em base 36 + aleatório)
func GenerateLegacy() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + randomString(randomLength)
}

// LooksStructured indica se o texto deve ser tratado como identificador estruturado
func LooksStructured(raw string) bool {
	return strings.Contains(raw, separator)
}

// Parse interpreta um identificador estruturado. Retorna false quando o
// formato é inválido; isso é um resultado esperado, não uma falha.
func Parse(raw string) (ID, bool) {
	parts := strings.Split(raw, separator)
	if len(parts) != 3 {
		return ID{}, false
	}

	t, ok := typesByPrefix[parts[0]]
	if !ok {
		return ID{}, false
	}

	if !allIn(parts[1], "0123456789") || len(parts[2]) != randomLength || !allIn(parts[2], alphabet) {
		return ID{}, false
	}
	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ID{}, false
	}

	return ID{
		Kind:      KindStructured,
		Type:      t,
		Timestamp: ts,
		Random:    parts[2],
		Raw:       raw,
	}, true
}

// IsValid retorna true se o identificador é estruturado e do tipo esperado
func IsValid(raw string, expected EntityType) bool {
	id, ok := Parse(raw)
	return ok && id.Type == expected
}

// Normalize converte qualquer identificador aceito na sua forma normalizada.
// Textos com separador precisam ser estruturados válidos; os demais são
// aceitos como legados quando alfanuméricos.
func Normalize(raw string) (ID, bool) {
	if raw == "" {
		return ID{}, false
	}
	if LooksStructured(raw) {
		return Parse(raw)
	}
	for _, r := range raw {
		if !isAlphanumeric(r) {
			return ID{}, false
		}
	}
	return ID{Kind: KindLegacy, Raw: raw}, true
}

// allIn indica se s não é vazio e só tem caracteres de chars
func allIn(s, chars string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(chars, r) {
			return false
		}
	}
	return true
}

func isAlphanumeric(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func randomString(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand indisponível: usa o relógio como fonte
			sb.WriteByte(alphabet[time.Now().UnixNano()%int64(len(alphabet))])
			continue
		}
		sb.WriteByte(alphabet[idx.Int64()])
	}
	return sb.String()
}
