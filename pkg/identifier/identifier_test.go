package identifier

import (
	"regexp"
	"testing"
	"time"
)

var structuredFormat = regexp.MustCompile(`^[A-Z]{3}-\d+-[0-9a-z]{8}$`)

var allTypes = []EntityType{Device, Customer, Sale, Expense, Supplier}

func TestGenerate_RoundTrip(t *testing.T) {
	for _, typ := range allTypes {
		id := Generate(typ)
		if !structuredFormat.MatchString(id) {
			t.Fatalf("%s: formato inesperado %q", typ, id)
		}
		parsed, ok := Parse(id)
		if !ok {
			t.Fatalf("%s: parse falhou para %q", typ, id)
		}
		if parsed.Type != typ || !parsed.IsStructured() {
			t.Fatalf("%s: tipo resolvido %s", typ, parsed.Type)
		}
		if !IsValid(id, typ) {
			t.Fatalf("%s: esperado válido", typ)
		}
		for _, other := range allTypes {
			if other != typ && IsValid(id, other) {
				t.Fatalf("%s aceito como %s", id, other)
			}
		}
	}
}

func TestGenerateAt_EmbedsTimestamp(t *testing.T) {
	at := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	id, ok := Parse(GenerateAt(Sale, at))
	if !ok {
		t.Fatalf("parse falhou")
	}
	if !id.Time().Equal(at) {
		t.Fatalf("timestamp %v, esperado %v", id.Time(), at)
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := []string{
		"",
		"DEV",
		"DEV-123",
		"DEV-123-abc-def",
		"DEV-abc-k3j9x0qa",
		"XYZ-123-k3j9x0qa",
		"dev-123-k3j9x0qa",
		"k3j9x0qak3j9",
		"DEV-+12-k3j9x0qa",
		"DEV--12-k3j9x0qa",
		"DEV-123-",
		"DEV-123-K3J9X0QA",
		"DEV-123-k3j9x0q",
		"DEV-123-k3j9x0qab",
		"DEV-123-k3j9_0qa",
	}
	for _, c := range cases {
		if _, ok := Parse(c); ok {
			t.Fatalf("esperado inválido: %q", c)
		}
		if IsValid(c, Device) {
			t.Fatalf("IsValid aceitou %q", c)
		}
	}
}

func TestNormalize(t *testing.T) {
	legacy := GenerateLegacy()
	id, ok := Normalize(legacy)
	if !ok || id.Kind != KindLegacy || id.Raw != legacy {
		t.Fatalf("legado não normalizado: %+v", id)
	}
	if LooksStructured(legacy) {
		t.Fatalf("legado não deve parecer estruturado")
	}

	structured := Generate(Customer)
	id, ok = Normalize(structured)
	if !ok || id.Kind != KindStructured || id.Type != Customer {
		t.Fatalf("estruturado não normalizado: %+v", id)
	}

	if _, ok := Normalize("DEV-xx"); ok {
		t.Fatalf("estruturado malformado deve falhar")
	}
	if _, ok := Normalize("abc def"); ok {
		t.Fatalf("texto com espaço deve falhar")
	}
}

func TestGenerate_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id := Generate(Device)
		if seen[id] {
			t.Fatalf("identificador repetido: %s", id)
		}
		seen[id] = true
	}
}
