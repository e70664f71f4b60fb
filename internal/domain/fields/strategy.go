package fields

import (
	"regexp"
	"strings"
)

// Tier identifica qué nivel de la cadena resolvió un campo.
type Tier int

const (
	TierNone Tier = iota
	TierAlias
	TierPattern
	TierPosition
)

func (t Tier) String() string {
	switch t {
	case TierAlias:
		return "alias"
	case TierPattern:
		return "pattern"
	case TierPosition:
		return "position"
	default:
		return "none"
	}
}

// Strategy es un nivel de resolución. Lookup nunca entra en pánico y sólo devuelve ok=true
// con un valor no vacío.
type Strategy interface {
	Tier() Tier
	Lookup(rec Record) (string, bool)
}

// Aliases busca la primera clave presente en el registro, en orden de prioridad de alias.
// El orden de las columnas del registro no influye en el resultado.
type Aliases []string

func (Aliases) Tier() Tier { return TierAlias }

func (a Aliases) Lookup(rec Record) (string, bool) {
	idx := rec.index()
	for _, alias := range a {
		i, ok := idx[NormalizeKey(alias)]
		if !ok {
			continue
		}
		if v, _ := rec.At(i); v != "" {
			return v, true
		}
	}
	return "", false
}

// Pattern recorre todos los valores y devuelve el primero con la forma esperada.
type Pattern struct {
	Re *regexp.Regexp
}

// MatchPattern compila expr; expr debe ser una constante válida.
func MatchPattern(expr string) Pattern {
	return Pattern{Re: regexp.MustCompile(expr)}
}

func (Pattern) Tier() Tier { return TierPattern }

func (p Pattern) Lookup(rec Record) (string, bool) {
	if p.Re == nil {
		return "", false
	}
	for _, raw := range rec.Values {
		v := strings.TrimSpace(raw)
		if v != "" && p.Re.MatchString(v) {
			return v, true
		}
	}
	return "", false
}

// Position lee una columna fija del layout heredado.
type Position int

func (Position) Tier() Tier { return TierPosition }

func (p Position) Lookup(rec Record) (string, bool) {
	v, ok := rec.At(int(p))
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Chain lista ordenada de estrategias para un campo.
type Chain []Strategy

// Lookup aplica la cadena y devuelve el valor junto con el nivel que lo resolvió.
func (c Chain) Lookup(rec Record) (string, Tier) {
	for _, s := range c {
		if s == nil {
			continue
		}
		if v, ok := s.Lookup(rec); ok {
			return v, s.Tier()
		}
	}
	return "", TierNone
}
