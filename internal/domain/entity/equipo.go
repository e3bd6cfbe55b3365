package entity

import "strings"

// PrefijoAliasEquipo prefijo del alias sintetizado cuando el equipo
// no tiene uno configurado.
const PrefijoAliasEquipo = "EQUIPO-"

// EquipoIdentidad identifica de forma estable un terminal físico.
// Se genera una vez, se persiste localmente y se reutiliza siempre;
// centralmente solo existe como llave foránea dentro de los bloques.
type EquipoIdentidad struct {
	EquipoID string
	Alias    string
}

// AliasPorDefecto sintetiza un alias legible desde el id:
// "EQUIPO-" + primeros 8 caracteres en mayúsculas.
func AliasPorDefecto(equipoID string) string {
	id := equipoID
	if len(id) > 8 {
		id = id[:8]
	}
	return PrefijoAliasEquipo + strings.ToUpper(id)
}

// NormalizarAlias recorta espacios; si queda vacío usa el alias por defecto.
func NormalizarAlias(alias, equipoID string) string {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return AliasPorDefecto(equipoID)
	}
	return alias
}
