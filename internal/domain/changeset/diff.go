package changeset

import (
	"bytes"
	"encoding/json"
	"sort"
)

// FieldChange un campo hoja modificado, listo para la revisión lado a lado.
// Para campos tipo arreglo no hay desglose por elemento: IsArray marca que el
// cambio se muestra como "ver JSON completo".
type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value"`
	NewValue any    `json:"new_value"`
	IsArray  bool   `json:"is_array"`
}

// Diff compara los cambios propuestos contra la línea base de la sección.
//
// Retorna nil cuando la sección no tiene línea base (cancelación). Retorna la
// lista de campos hoja modificados en el resto de casos; vacía si nada cambió.
//
// Reglas de comparación:
//   - objeto anidado: se recorre por clave construyendo una ruta punteada;
//   - arreglo: igualdad por serialización completa, un solo registro con
//     IsArray=true si difiere;
//   - hoja escalar: cuenta como cambio solo si el valor propuesto está
//     definido, no es nil ni cadena vacía, y difiere del actual. Si el valor
//     actual estaba vacío, cualquier propuesto no vacío cuenta como cambio
//     (primer poblamiento de un campo).
func Diff(sec Section, current map[string]any, proposed map[string]any) []FieldChange {
	if sec == SectionCancellation {
		return nil
	}
	if proposed == nil {
		return []FieldChange{}
	}
	changes := []FieldChange{}
	walk("", current, proposed, &changes)
	return changes
}

func walk(prefix string, current map[string]any, proposed map[string]any, out *[]FieldChange) {
	// Orden estable de claves para que la revisión sea determinista.
	keys := make([]string, 0, len(proposed))
	for k := range proposed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		newVal := proposed[k]
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		var oldVal any
		if current != nil {
			oldVal = current[k]
		}

		switch nv := newVal.(type) {
		case map[string]any:
			oldMap, _ := oldVal.(map[string]any)
			walk(path, oldMap, nv, out)
		case []any:
			if !sameSerialized(oldVal, nv) {
				*out = append(*out, FieldChange{Field: path, IsArray: true})
			}
		default:
			if isEmptyScalar(newVal) {
				continue
			}
			if isEmptyScalar(oldVal) || !sameSerialized(oldVal, newVal) {
				*out = append(*out, FieldChange{Field: path, OldValue: oldVal, NewValue: newVal})
			}
		}
	}
}

// sameSerialized compara por serialización JSON: neutraliza diferencias de
// tipo (int vs float64 tras un round-trip JSON) y cubre la comparación
// longitud + valor completo de los arreglos.
func sameSerialized(a, b any) bool {
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

func isEmptyScalar(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
