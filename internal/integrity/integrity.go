// Package integrity verifica as referências entre coleções.
//
// As coleções se relacionam apenas por identificador. Uma referência é
// válida quando o identificador tem o formato e o tipo certos e aponta para
// um registro existente. A busca reversa responde "quem aponta para este
// registro" e é usada como pré-condição das exclusões.
package integrity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hugohenrick/erp-revenda/pkg/identifier"
)

var (
	ErrInvalidReference = errors.New("referência inválida")
	ErrEntityReferenced = errors.New("registro referenciado por outros registros")
)

// Lookup diz se existe um registro com o identificador
type Lookup func(id string) bool

// ValidateEntityReference verifica formato, tipo e existência da referência.
// Identificadores estruturados precisam ser do tipo esperado; os legados só
// precisam existir.
func ValidateEntityReference(id string, t identifier.EntityType, exists Lookup) bool {
	n, ok := identifier.Normalize(id)
	if !ok {
		return false
	}
	if n.IsStructured() && n.Type != t {
		return false
	}
	return exists != nil && exists(id)
}

// CheckReference é ValidateEntityReference devolvendo um erro descritivo
func CheckReference(field, id string, t identifier.EntityType, exists Lookup) error {
	if !ValidateEntityReference(id, t, exists) {
		return fmt.Errorf("%w: %s %q não é um %s existente", ErrInvalidReference, field, id, t)
	}
	return nil
}

// Source é uma coleção que aponta para outra por um campo de referência
type Source interface {
	// Referencing retorna os IDs dos registros cujo campo aponta para entityID
	Referencing(entityID string) []string
}

type source[T any] struct {
	entities []T
	id       func(T) string
	field    func(T) string
}

func (s source[T]) Referencing(entityID string) []string {
	var out []string
	for _, e := range s.entities {
		if s.field(e) == entityID {
			out = append(out, s.id(e))
		}
	}
	return out
}

// NewSource monta uma Source sobre uma coleção tipada
func NewSource[T any](entities []T, id func(T) string, field func(T) string) Source {
	return source[T]{entities: entities, id: id, field: field}
}

// FindEntityReferences retorna, por nome de coleção, os registros que apontam
// para entityID. Coleções sem nenhuma referência ficam fora do resultado.
func FindEntityReferences(entityID string, sources map[string]Source) map[string][]string {
	out := make(map[string][]string)
	for name, src := range sources {
		if ids := src.Referencing(entityID); len(ids) > 0 {
			out[name] = ids
		}
	}
	return out
}

// ReferenceError descreve uma exclusão bloqueada por referências
type ReferenceError struct {
	EntityID   string
	Type       identifier.EntityType
	References map[string][]string
}

func (e *ReferenceError) Error() string {
	names := make([]string, 0, len(e.References))
	for name := range e.References {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s (%d)", name, len(e.References[name])))
	}
	return fmt.Sprintf("%s %s ainda é referenciado por: %s", e.Type, e.EntityID, strings.Join(parts, ", "))
}

func (e *ReferenceError) Unwrap() error {
	return ErrEntityReferenced
}

// Guard falha com *ReferenceError quando algum registro aponta para entityID
func Guard(entityID string, t identifier.EntityType, sources map[string]Source) error {
	refs := FindEntityReferences(entityID, sources)
	if len(refs) == 0 {
		return nil
	}
	return &ReferenceError{EntityID: entityID, Type: t, References: refs}
}
